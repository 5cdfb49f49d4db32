package http

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/contact/domain"
)

type newsletterReq struct {
	Email string `json:"email"`
}

func SubscribeNewsletterHandler(contacts domain.ContactRepo, audience Audience) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req newsletterReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Email is required",
			})
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Email is required",
			})
		}

		ct, err := contacts.Upsert(req.Email, domain.UpsertFields{Tags: []string{"newsletter"}})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Could not subscribe",
			})
		}

		if audience != nil {
			if err := audience.AddToAudience(c.Context(), ct.Email, nil, []string{"newsletter"}); err != nil {
				log.Printf("newsletter: audience sync for %s failed: %v", ct.Email, err)
			}
		}

		return c.JSON(fiber.Map{"message": "Subscribed to newsletter"})
	}
}
