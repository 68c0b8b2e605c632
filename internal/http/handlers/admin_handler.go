package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bargainbay/internal/domain"
	applog "bargainbay/internal/log"
	"bargainbay/internal/services"
	"bargainbay/internal/validate"
)

type AdminHandler struct {
	Catalog *services.CatalogService
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *fiber.Ctx) error {
	name, ok := validate.Name(c.FormValue("name"))
	if !ok {
		return badRequest(c, "name", services.ErrInvalidProduct.Error())
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return badRequest(c, "price", services.ErrInvalidProduct.Error())
	}
	in := domain.ProductInput{
		Name:        name,
		Description: c.FormValue("description"),
		Price:       price,
		Category:    c.FormValue("category"),
		ImageURL:    c.FormValue("imageUrl"),
	}
	p, err := h.Catalog.Create(reqCtx(c), session(c), in)
	if err != nil {
		return fail(c, "admin.products.create", err)
	}
	applog.Audit(c, "admin.products.create", map[string]any{"product_id": p.ID, "name": p.Name})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	if err := h.Catalog.Delete(reqCtx(c), session(c), id); err != nil {
		return fail(c, "admin.products.delete", err)
	}
	applog.Audit(c, "admin.products.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
