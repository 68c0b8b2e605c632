package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bargainbay/internal/services"
)

const sessionCookie = "sid"

func setSIDCookie(c *fiber.Ctx, sid string, expires time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   false, // enable behind TLS
		Expires:  expires,
	})
}

// Sessions attaches the caller's Session to the request, minting a sid cookie
// on first contact. A session unknown to this process gets its persisted
// credentials restored.
func Sessions(store *services.SessionStore, auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sessionCookie)
		if _, err := uuid.Parse(sid); err != nil {
			sid = uuid.NewString()
			setSIDCookie(c, sid, time.Time{})
		}
		s, ok := store.Get(sid)
		if !ok {
			s = store.GetOrCreate(sid)
			auth.Restore(reqCtx(c), s)
		}
		c.Locals("sid", sid)
		c.Locals("session", s)
		return c.Next()
	}
}

func session(c *fiber.Ctx) *services.Session {
	s, _ := c.Locals("session").(*services.Session)
	return s
}

// reqCtx carries the request id into outgoing remote calls.
func reqCtx(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()
	if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
		ctx = services.WithRequestID(ctx, rid)
	}
	return ctx
}
