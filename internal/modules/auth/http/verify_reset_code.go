package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/domain"
)

type verifyResetReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyResetCodeHandler is a read-only check the UI calls before showing
// the new-password form. It never consumes the code; reset-password
// re-validates everything.
func VerifyResetCodeHandler(accounts domain.AccountRepo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req verifyResetReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Email and code are required",
			})
		}
		req.Email = strings.TrimSpace(req.Email)
		req.Code = strings.TrimSpace(req.Code)
		if req.Email == "" || req.Code == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Email and code are required",
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

		return c.JSON(fiber.Map{"message": "Reset code verified successfully"})
	}
}
