package http

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/domain"
	"github.com/orvnworldofficial-web/HOOB/internal/platform/security"
)

type sendCodeReq struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=student SME admin"`
}

var validate = validator.New()

// SendCodeHandler stages a signup (new or repeated) and emails a fresh
// 6-digit code. Issuing a new code always invalidates the previous one and
// flips the account back to unverified until the new code is consumed.
func SendCodeHandler(accounts domain.AccountRepo, mailer Mailer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req sendCodeReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Name, email, and password are required",
			})
		}
		req.Email = strings.TrimSpace(req.Email)
		req.Password = strings.TrimSpace(req.Password)

		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "VALIDATION_ERROR",
				"message":    err.Error(),
			})
		}

		code, err := security.RandomDigits(6)
		if err != nil {
			return serverError(c, "Server error while sending code")
		}

		role := domain.Role(req.Role)
		if role == "" {
			role = domain.RoleStudent
		}

		acct, err := accounts.UpsertPendingSignup(req.Email, domain.PendingSignup{
			Name:     req.Name,
			Password: req.Password,
			Role:     role,
			Code:     code,
			Expires:  time.Now().Add(domain.CodeTTL),
		})
		if err != nil {
			return serverError(c, "Server error while sending code")
		}

		// state is committed; a failed send must not undo it
		if mailer != nil {
			if err := mailer.SendVerificationCode(c.Context(), acct.Email, req.Name, code); err != nil {
				log.Printf("auth: verification mail to %s failed: %v", acct.Email, err)
			}
		}

		return c.JSON(fiber.Map{"message": "Verification code sent to email"})
	}
}

func serverError(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error_code": "SERVER_ERROR",
		"message":    msg,
	})
}
