package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/domain"
	"github.com/orvnworldofficial-web/HOOB/internal/platform/security"
)

type resetReq struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

// ResetPasswordHandler re-validates the reset code (a prior
// verify-reset-code call is not trusted), hashes the new credential and
// clears the code. Verified, role and name stay as they are.
func ResetPasswordHandler(accounts domain.AccountRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resetReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "All fields are required",
			})
		}
		req.Email = strings.TrimSpace(req.Email)
		req.Password = strings.TrimSpace(req.Password)
		if req.Email == "" || req.Code == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "All fields are required",
			})
		}

		a, err := accounts.GetByEmail(req.Email)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error_code": "NOT_FOUND",
				"message":    "User not found",
			})
		}
		if !a.ResetCodeMatches(req.Code) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_CODE",
				"message":    "Invalid reset code",
			})
		}
		if a.ResetCodeExpired(time.Now()) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "CODE_EXPIRED",
				"message":    "Reset code expired",
			})
		}

		hash, err := security.HashPassword(req.Password)
		if err != nil {
			return serverError(c, "Server error during password reset")
		}
		if err := accounts.UpdatePassword(a.ID, hash); err != nil {
			return serverError(c, "Server error during password reset")
		}

		return c.JSON(fiber.Map{"message": "Password reset successful"})
	}
}
