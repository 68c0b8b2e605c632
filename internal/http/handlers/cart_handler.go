package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bargainbay/internal/log"
	"bargainbay/internal/services"
	"bargainbay/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(h.Cart.View(session(c)))
}

// POST /cart  productId=
func (h *CartHandler) Add(c *fiber.Ctx) error {
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return badRequest(c, "productId", "missing productId")
	}
	cv, err := h.Cart.Add(session(c), id)
	if err != nil {
		return fail(c, "cart.add", err)
	}
	return c.JSON(cv)
}

// POST /cart/:id/qty  delta=
func (h *CartHandler) ChangeQty(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	delta, ok := validate.Delta(c.FormValue("delta"))
	if !ok {
		return badRequest(c, "delta", "delta must be a non-zero number")
	}
	return c.JSON(h.Cart.ChangeQty(session(c), id, delta))
}

// DELETE /cart/:id
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	return c.JSON(h.Cart.Remove(session(c), id))
}

// POST /cart/coupon  code=
// A rejected code still returns the cart, since it clears any earlier discount.
func (h *CartHandler) Coupon(c *fiber.Ctx) error {
	cv, err := h.Cart.ApplyCoupon(session(c), c.FormValue("code"))
	if err != nil {
		applog.Info(c, "cart.coupon.reject", map[string]any{"reason": err.Error()})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "cart": cv})
	}
	applog.Info(c, "cart.coupon.apply", map[string]any{"code": cv.Quote.Code})
	return c.JSON(cv)
}
