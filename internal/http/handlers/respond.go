package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bargainbay/internal/client"
	applog "bargainbay/internal/log"
	"bargainbay/internal/services"
)

const remoteDown = "The store service is unavailable. Please try again."

// userErrors are shown to the shopper verbatim.
var userErrors = []error{
	services.ErrMissingCode,
	services.ErrInvalidCoupon,
	services.ErrStarsOutOfRange,
	services.ErrEmptyCart,
	services.ErrMissingAddress,
	services.ErrBadPaymentMethod,
	services.ErrAlreadyCancelled,
	services.ErrInvalidProduct,
}

func badRequest(c *fiber.Ctx, field, msg string) error {
	applog.Security(c, "validation.fail", map[string]any{"field": field})
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

// fail maps an engine or remote error to a status and a short message.
func fail(c *fiber.Ctx, action string, err error) error {
	for _, ue := range userErrors {
		if errors.Is(err, ue) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ue.Error()})
		}
	}
	switch {
	case errors.Is(err, services.ErrNotAuthenticated), errors.Is(err, services.ErrBadCreds):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		applog.Security(c, "access.denied.admin", map[string]any{"action": action})
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Access denied"})
	case errors.Is(err, services.ErrUnknownProduct):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrStale):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case client.IsStatus(err, fiber.StatusUnauthorized):
		applog.Security(c, action+".fail", map[string]any{"reason": "remote_unauthorized"})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Your session expired. Please log in again."})
	case client.IsStatus(err, fiber.StatusNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case client.IsStatus(err, fiber.StatusConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already exists"})
	case client.IsStatus(err, fiber.StatusBadRequest):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "The store rejected the request"})
	}
	applog.Error(c, action+".fail", err, nil)
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": remoteDown})
}
