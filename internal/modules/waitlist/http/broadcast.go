package http

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/waitlist/domain"
)

type broadcastReq struct {
	Password string `json:"password"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
}

// BroadcastHandler mails every waitlist member. The shared password is a
// holdover from the launch tooling; the route is not behind JWT.
func BroadcastHandler(waitlist domain.WaitlistRepo, mailer Mailer, password string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req broadcastReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Subject and message are required",
			})
		}
		if password == "" || req.Password != password {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Unauthorized",
			})
		}
		if req.Subject == "" || req.Message == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Subject and message are required",
			})
		}

		recipients, err := waitlist.Emails()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Could not load waitlist",
			})
		}

		sent := 0
		for _, to := range recipients {
			if mailer == nil {
				break
			}
			if err := mailer.SendBroadcast(c.Context(), to, req.Subject, req.Message); err != nil {
				log.Printf("broadcast: mail to %s failed: %v", to, err)
				continue
			}
			sent++
		}

		return c.JSON(fiber.Map{"message": fmt.Sprintf("Broadcast sent to %d users", sent)})
	}
}
