package http

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/domain"
	"github.com/orvnworldofficial-web/HOOB/internal/platform/security"
)

type forgotReq struct {
	Email string `json:"email"`
}

const forgotMessage = "If the email exists, a reset code will be sent"

// ForgotPasswordHandler answers identically whether or not the account
// exists, so the endpoint cannot be used to enumerate identities. Unknown
// addresses cause no writes and no mail.
func ForgotPasswordHandler(accounts domain.AccountRepo, mailer Mailer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req forgotReq
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

		a, err := accounts.GetByEmail(req.Email)
		if err != nil {
			return c.JSON(fiber.Map{"message": forgotMessage})
		}

		code, err := security.RandomDigits(6)
		if err != nil {
			return serverError(c, "Server error during password reset")
		}
		if err := accounts.SetResetCode(a.ID, code, time.Now().Add(domain.CodeTTL)); err != nil {
			return serverError(c, "Server error during password reset")
		}

		if mailer != nil {
			if err := mailer.SendResetCode(c.Context(), a.Email, code); err != nil {
				log.Printf("auth: reset mail to %s failed: %v", a.Email, err)
			}
		}

		return c.JSON(fiber.Map{"message": forgotMessage})
	}
}
