package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/domain"
	"github.com/orvnworldofficial-web/HOOB/internal/platform/security"
)

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResp has no message field, unlike the signup completion payload.
type loginResp struct {
	Token string   `json:"token"`
	User  userResp `json:"user"`
}

func LoginHandler(accounts domain.AccountRepo, jwtMgr *security.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Email and password are required",
			})
		}
		req.Email = strings.TrimSpace(req.Email)
		req.Password = strings.TrimSpace(req.Password)
		if req.Email == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Email and password are required",
			})
		}

		a, err := accounts.GetByEmail(req.Email)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error_code": "NOT_FOUND",
				"message":    "User not found",
			})
		}

		// an account is only usable once a code has been consumed
		if !a.Verified {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "EMAIL_NOT_VERIFIED",
				"message":    "Email not verified",
			})
		}

		ok := a.PasswordHash != ""
		if ok {
			ok, _ = security.CheckPassword(a.PasswordHash, req.Password)
		}
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_CREDENTIALS",
				"message":    "Invalid password",
			})
		}

		token, _, err := jwtMgr.IssueAccess(a.ID, string(a.Role))
		if err != nil {
			return serverError(c, "Server error during login")
		}

		return c.JSON(loginResp{
			Token: token,
			User:  userResp{Role: string(a.Role), Name: a.Name, Email: a.Email},
		})
	}
}
