package http

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/domain"
	"github.com/orvnworldofficial-web/HOOB/internal/platform/security"
)

type createAdminReq struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateAdminHandler inserts a verified admin directly: no code flow, the
// credential is hashed up front. Unlike send-code, a duplicate identity
// here is a hard conflict.
func CreateAdminHandler(accounts domain.AccountRepo, mailer Mailer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createAdminReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Email and password required",
			})
		}
		req.Email = strings.TrimSpace(req.Email)
		if err := validate.Struct(req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "VALIDATION_ERROR",
				"message":    err.Error(),
			})
		}

		hash, err := security.HashPassword(req.Password)
		if err != nil {
			return serverError(c, "Server error while creating admin")
		}

		a, err := accounts.CreateAdmin(req.Email, req.Name, hash)
		if err == domain.ErrEmailTaken {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error_code": "EMAIL_TAKEN",
				"message":    "User already exists",
			})
		}
		if err != nil {
			return serverError(c, "Server error while creating admin")
		}

		if mailer != nil {
			if err := mailer.SendAdminCreated(c.Context(), a.Email); err != nil {
				log.Printf("auth: admin mail to %s failed: %v", a.Email, err)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Admin created successfully",
			"admin":   fiber.Map{"name": a.Name, "email": a.Email},
		})
	}
}
