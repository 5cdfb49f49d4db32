package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/contact/domain"
	"github.com/orvnworldofficial-web/HOOB/internal/modules/contact/infra"
	mongorepo "github.com/orvnworldofficial-web/HOOB/internal/modules/contact/infra/mongo"
)

// Audience is the marketing list integration (Mailchimp in production).
// Sync is fire-and-forget: a failure is logged, the request still
// succeeds.
type Audience interface {
	AddToAudience(ctx context.Context, email string, mergeFields map[string]string, tags []string) error
}

type Module struct {
	contacts domain.ContactRepo
	audience Audience
}

func (m *Module) WithAudience(a Audience) *Module {
	m.audience = a
	return m
}

func NewModule() *Module {
	return &Module{contacts: infra.NewMemContactRepo()}
}

func NewModuleMongo(db *mongo.Database) *Module {
	return &Module{contacts: mongorepo.NewContactRepo(db)}
}

func (m *Module) Register(r fiber.Router) {
	r.Post("/contact", SubmitContactHandler(m.contacts, m.audience))
	r.Post("/newsletter", SubscribeNewsletterHandler(m.contacts, m.audience))
}
