package http

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/waitlist/domain"
	"github.com/orvnworldofficial-web/HOOB/internal/modules/waitlist/infra"
	mongorepo "github.com/orvnworldofficial-web/HOOB/internal/modules/waitlist/infra/mongo"
)

type Mailer interface {
	SendWaitlistWelcome(ctx context.Context, to string) error
	SendBroadcast(ctx context.Context, to, subject, message string) error
}

// Module serves the waitlist signup and the password-gated broadcast.
type Module struct {
	waitlist domain.WaitlistRepo
	mailer   Mailer

	broadcastPassword string
}

func (m *Module) WithMailer(ma Mailer) *Module {
	m.mailer = ma
	return m
}

func NewModule(broadcastPassword string) *Module {
	return &Module{
		waitlist:          infra.NewMemWaitlistRepo(),
		broadcastPassword: broadcastPassword,
	}
}

func NewModuleMongo(db *mongo.Database, broadcastPassword string) *Module {
	repo := mongorepo.NewWaitlistRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Printf("waitlist: ensure indexes: %v", err)
	}
	return &Module{
		waitlist:          repo,
		broadcastPassword: broadcastPassword,
	}
}

func (m *Module) Register(r fiber.Router) {
	r.Post("/waitlist", JoinHandler(m.waitlist, m.mailer))
	r.Post("/send-broadcast", BroadcastHandler(m.waitlist, m.mailer, m.broadcastPassword))
}
