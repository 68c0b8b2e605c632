package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bargainbay/internal/domain"
	applog "bargainbay/internal/log"
	"bargainbay/internal/services"
	"bargainbay/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// GET /orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	vs, err := h.Orders.Load(reqCtx(c), session(c))
	if err != nil {
		return fail(c, "orders.load", err)
	}
	return c.JSON(fiber.Map{"orders": vs})
}

// GET /orders/view renders the timeline page. A failed refresh falls back to
// the last accepted snapshot.
func (h *OrderHandler) Page(c *fiber.Ctx) error {
	s := session(c)
	vs, err := h.Orders.Load(reqCtx(c), s)
	data := fiber.Map{}
	if err != nil {
		if !errors.Is(err, services.ErrStale) {
			applog.Error(c, "orders.load.fail", err, nil)
			data["Err"] = remoteDown
		}
		vs = h.Orders.Views(s)
	}
	data["Orders"] = vs
	return render(c, "orders", data)
}

// POST /orders  address= paymentMethod=
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	addr, ok := validate.Address(c.FormValue("address"))
	if !ok {
		return badRequest(c, "address", services.ErrMissingAddress.Error())
	}
	method := domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(c.FormValue("paymentMethod"))))

	o, err := h.Orders.Checkout(reqCtx(c), session(c), addr, method)
	if err != nil {
		return fail(c, "orders.place", err)
	}
	applog.Audit(c, "orders.place", map[string]any{
		"order_id": o.ID,
		"total":    o.TotalAmount.StringFixed(2),
		"payment":  o.PaymentMethod,
	})
	return c.Status(fiber.StatusCreated).JSON(o)
}

// POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid order id")
	}
	vs, err := h.Orders.Cancel(reqCtx(c), session(c), id)
	if err != nil && !errors.Is(err, services.ErrStale) {
		return fail(c, "orders.cancel", err)
	}
	applog.Audit(c, "orders.cancel", map[string]any{"order_id": id})
	if c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML {
		return c.Redirect("/orders/view")
	}
	if vs == nil {
		vs = h.Orders.Views(session(c))
	}
	return c.JSON(fiber.Map{"orders": vs})
}
