package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"bargainbay/internal/log"
	"bargainbay/internal/services"
	"bargainbay/internal/validate"
)

type AuthHandler struct {
	Auth     *services.AuthService
	Catalog  *services.CatalogService
	Sessions *services.SessionStore
}

const badCredsMsg = "Invalid email or password"

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email, ok := validate.Email(c.FormValue("email"))
	pass := c.FormValue("password")
	if !ok {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": badCredsMsg})
	}
	if !validate.Password(pass) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "bad_password_format"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": badCredsMsg})
	}

	s := session(c)
	creds, err := h.Auth.Login(reqCtx(c), s, email, pass)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"email": email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": badCredsMsg})
	}
	if err != nil {
		return fail(c, "auth.login", err)
	}
	log.Audit(c, "auth.login.success", map[string]any{"email": email, "role": creds.Role})

	// the product grid is fetched right after login
	if _, err := h.Catalog.Load(reqCtx(c), s); err != nil && !errors.Is(err, services.ErrStale) {
		log.Error(c, "catalog.load.fail", err, nil)
	}
	return c.JSON(fiber.Map{"role": creds.Role})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return badRequest(c, "name", "Please enter your name")
	}
	email, ok := validate.Email(c.FormValue("email"))
	if !ok {
		return badRequest(c, "email", "Please enter a valid email")
	}
	pass := c.FormValue("password")
	if !validate.Password(pass) {
		return badRequest(c, "password", "Password must be 6 to 64 characters")
	}
	if err := h.Auth.Register(reqCtx(c), name, email, pass); err != nil {
		log.Security(c, "auth.register.fail", map[string]any{"email": email})
		return fail(c, "auth.register", err)
	}
	log.Audit(c, "auth.register.success", map[string]any{"email": email})
	return c.SendStatus(fiber.StatusCreated)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	s := session(c)
	if err := h.Auth.Logout(reqCtx(c), s); err != nil {
		log.Error(c, "auth.logout.fail", err, nil)
	}
	if h.Sessions != nil {
		h.Sessions.Delete(s.ID)
	}
	setSIDCookie(c, "", time.Now().Add(-1*time.Hour))
	log.Audit(c, "auth.logout", map[string]any{"sid": s.ID})
	return c.SendStatus(fiber.StatusNoContent)
}
