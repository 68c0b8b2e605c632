package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bargainbay/internal/services"
	"bargainbay/internal/validate"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

// GET /products/suggest?q=
func (h *SearchHandler) Suggest(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"suggestions": h.Catalog.Suggest(session(c), validate.Q(c.Query("q")))})
}

// POST /products/suggest/:id picks a suggestion as the search text.
func (h *SearchHandler) Select(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	state, err := h.Catalog.SelectSuggestion(session(c), id)
	if err != nil {
		return fail(c, "search.select", err)
	}
	return c.JSON(fiber.Map{"search": state.Text, "suggestions": state.Suggestions})
}
