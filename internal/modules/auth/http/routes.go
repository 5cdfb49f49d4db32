package http

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/domain"
	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/infra"
	mongorepo "github.com/orvnworldofficial-web/HOOB/internal/modules/auth/infra/mongo"
	plathttp "github.com/orvnworldofficial-web/HOOB/internal/platform/http"
	"github.com/orvnworldofficial-web/HOOB/internal/platform/security"
)

// Mailer is the slice of the platform mailer the auth flows need.
// Delivery is best-effort: handlers log failures and keep the committed
// state change.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
	SendResetCode(ctx context.Context, to, code string) error
	SendAdminCreated(ctx context.Context, to string) error
}

// Module wires up dependencies for the auth HTTP module.
type Module struct {
	accounts  domain.AccountRepo
	jwtSecret []byte
	accessTTL time.Duration

	mailer Mailer
}

func (m *Module) WithMailer(ma Mailer) *Module {
	m.mailer = ma
	return m
}

// NewModule builds an in-memory module, used by tests and local runs
// without a database.
func NewModule() *Module {
	return &Module{
		accounts:  infra.NewMemAccountRepo(),
		jwtSecret: []byte("super-secret"),
		accessTTL: 15 * time.Minute,
	}
}

// NewModuleMongo creates the Mongo-backed module.
func NewModuleMongo(db *mongo.Database, jwtSecret string, accessTTL time.Duration) *Module {
	if accessTTL == 0 {
		accessTTL = 7 * 24 * time.Hour
	}
	repo := mongorepo.NewAccountRepo(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Printf("auth: ensure indexes: %v", err)
	}
	return &Module{
		accounts:  repo,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
	}
}

func (m *Module) Register(r fiber.Router) {
	jwtMgr := security.NewJWTManager(string(m.jwtSecret), m.accessTTL)

	auth := r.Group("/auth")
	auth.Post("/send-code", SendCodeHandler(m.accounts, m.mailer))
	auth.Post("/verify-code", VerifyCodeHandler(m.accounts, jwtMgr))
	auth.Post("/login", LoginHandler(m.accounts, jwtMgr))
	auth.Post("/forgot-password", ForgotPasswordHandler(m.accounts, m.mailer))
	auth.Post("/verify-reset-code", VerifyResetCodeHandler(m.accounts))
	auth.Post("/reset-password", ResetPasswordHandler(m.accounts))

	// only logged-in admins can create other admins
	admin := r.Group("/admin", plathttp.JWTAuth(m.jwtSecret), plathttp.RequireRoles(string(domain.RoleAdmin)))
	admin.Post("/create", CreateAdminHandler(m.accounts, m.mailer))
}
