package http

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/contact/domain"
)

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func SubmitContactHandler(contacts domain.ContactRepo, audience Audience) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req contactReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Name, email and message are required",
			})
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Name == "" || req.Email == "" || req.Message == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Name, email and message are required",
			})
		}

		ct, err := contacts.Upsert(req.Email, domain.UpsertFields{
			Name:    &req.Name,
			Message: &req.Message,
			Tags:    []string{"contact"},
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Could not submit contact",
			})
		}

		if audience != nil {
			if err := audience.AddToAudience(c.Context(), ct.Email, map[string]string{"FNAME": req.Name}, []string{"contact"}); err != nil {
				log.Printf("contact: audience sync for %s failed: %v", ct.Email, err)
			}
		}

		return c.JSON(fiber.Map{"message": "Contact submitted"})
	}
}
