package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bargainbay/internal/services"
	"bargainbay/internal/validate"
)

type WishlistHandler struct {
	Wish *services.WishlistService
}

// GET /wishlist
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"items": h.Wish.List(session(c))})
}

// POST /wishlist/:id toggles membership.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	in, err := h.Wish.Toggle(session(c), id)
	if err != nil {
		return fail(c, "wishlist.toggle", err)
	}
	return c.JSON(fiber.Map{"productId": id, "saved": in})
}
