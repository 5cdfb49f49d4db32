package http

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/waitlist/domain"
)

type joinReq struct {
	Email string `json:"email"`
}

func JoinHandler(waitlist domain.WaitlistRepo, mailer Mailer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req joinReq
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

		e, err := waitlist.Add(req.Email)
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "EMAIL_TAKEN",
				"message":    "Email already on waitlist",
			})
		}
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error_code": "SERVER_ERROR",
				"message":    "Could not join waitlist",
			})
		}

		if mailer != nil {
			if err := mailer.SendWaitlistWelcome(c.Context(), e.Email); err != nil {
				log.Printf("waitlist: welcome mail to %s failed: %v", e.Email, err)
			}
		}

		return c.JSON(fiber.Map{"message": "Added to waitlist"})
	}
}
