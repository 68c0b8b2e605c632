package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bargainbay/internal/log"
)

// RequireUser rejects callers without credentials.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session(c)
		if s == nil || !s.Credentials().LoggedIn() {
			applog.Security(c, "access.denied.user", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please log in"})
		}
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := session(c)
		if s == nil || !s.Credentials().LoggedIn() {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": "anonymous"})
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please log in"})
		}
		if creds := s.Credentials(); !creds.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"role": creds.Role})
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
		}
		return c.Next()
	}
}
