package main

import (
	"log"

	"github.com/orvnworldofficial-web/HOOB/internal/db"
	"github.com/orvnworldofficial-web/HOOB/internal/platform/config"
	phttp "github.com/orvnworldofficial-web/HOOB/internal/platform/http"
	"github.com/orvnworldofficial-web/HOOB/internal/platform/mailchimp"
	"github.com/orvnworldofficial-web/HOOB/internal/platform/notify"

	authhttp "github.com/orvnworldofficial-web/HOOB/internal/modules/auth/http"
	contacthttp "github.com/orvnworldofficial-web/HOOB/internal/modules/contact/http"
	waitlisthttp "github.com/orvnworldofficial-web/HOOB/internal/modules/waitlist/http"
)

func main() {
	cfg := config.Load()

	database := db.MustOpen(cfg.MongoURI, cfg.MongoDB)
	log.Printf("connected to MongoDB: %s", cfg.MongoDB)

	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	audience := mailchimp.NewClient(cfg.MailchimpAPIKey, cfg.MailchimpServerPrefix, cfg.MailchimpAudienceID)
	if !audience.Enabled() {
		log.Print("mailchimp sync disabled (not configured)")
	}

	authModule := authhttp.NewModuleMongo(database, cfg.JWTSecret, cfg.AccessTTL).WithMailer(mailer)
	waitlistModule := waitlisthttp.NewModuleMongo(database, cfg.BroadcastPassword).WithMailer(mailer)
	contactModule := contacthttp.NewModuleMongo(database).WithAudience(audience)

	app := phttp.NewServer(
		phttp.Options{AppName: "hoob-backend", CORSOrigins: cfg.CORSOrigins},
		authModule, waitlistModule, contactModule,
	)

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
