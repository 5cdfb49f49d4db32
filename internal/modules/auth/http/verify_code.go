package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orvnworldofficial-web/HOOB/internal/modules/auth/domain"
	"github.com/orvnworldofficial-web/HOOB/internal/platform/security"
)

type verifyCodeReq struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type authResp struct {
	Message string   `json:"message"`
	Token   string   `json:"token"`
	User    userResp `json:"user"`
}

type userResp struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// VerifyCodeHandler consumes a signup code: guards run in a fixed order
// (not found, already verified, mismatch, expired), then the staged fields
// become permanent and the password is hashed exactly once.
func VerifyCodeHandler(accounts domain.AccountRepo, jwtMgr *security.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req verifyCodeReq
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_FIELDS",
				"message":    "Email and code are required",
			})
		}
		req.Email = strings.TrimSpace(req.Email)
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
		if a.Verified {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "ALREADY_VERIFIED",
				"message":    "User already verified",
			})
		}
		if !a.VerificationCodeMatches(req.Code) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "INVALID_CODE",
				"message":    "Invalid code",
			})
		}
		if a.VerificationCodeExpired(time.Now()) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error_code": "CODE_EXPIRED",
				"message":    "Code expired",
			})
		}

		hash, err := security.HashPassword(a.TempPassword)
		if err != nil {
			return serverError(c, "Server error during verification")
		}
		role := a.PendingRole()
		if err := accounts.PromoteSignup(a.ID, domain.Promotion{
			Name:         a.TempName,
			PasswordHash: hash,
			Role:         role,
		}); err != nil {
			return serverError(c, "Server error during verification")
		}

		token, _, err := jwtMgr.IssueAccess(a.ID, string(role))
		if err != nil {
			return serverError(c, "Server error during verification")
		}

		return c.JSON(authResp{
			Message: "Email verified & signup complete",
			Token:   token,
			User:    userResp{Role: string(role), Name: a.TempName, Email: a.Email},
		})
	}
}
