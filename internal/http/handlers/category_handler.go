package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bargainbay/internal/services"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /categories lists the filter options, "ALL" first.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats := append([]string{services.AllCategories}, h.Catalog.Categories(session(c))...)
	return c.JSON(fiber.Map{"categories": cats})
}
