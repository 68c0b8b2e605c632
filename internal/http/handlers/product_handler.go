package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bargainbay/internal/domain"
	applog "bargainbay/internal/log"
	"bargainbay/internal/services"
	"bargainbay/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
	Ratings *services.Ratings
}

// productCard is one tile of the product grid.
type productCard struct {
	domain.Product
	ImageSrc string            `json:"image"`
	Stars    services.StarView `json:"stars"`
}

func (h *ProductHandler) cards(ps []domain.Product) []productCard {
	out := make([]productCard, 0, len(ps))
	for _, p := range ps {
		out = append(out, productCard{Product: p, ImageSrc: p.Image(), Stars: h.Ratings.Stars(string(p.ID))})
	}
	return out
}

// GET /products?q=&category=&sort=
func (h *ProductHandler) List(c *fiber.Ctx) error {
	s := session(c)
	params := services.BrowseParams{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	if raw, ok := c.Queries()["q"]; ok {
		q := validate.Q(raw)
		params.Search = &q
	}
	ps := h.Catalog.Browse(s, params)

	var state services.SearchState
	s.View(func(s *services.Session) { state = s.Search })
	return c.JSON(fiber.Map{
		"products": h.cards(ps),
		"search":   state.Text,
		"category": state.Category,
		"sort":     state.Sort,
	})
}

// POST /products/reload
func (h *ProductHandler) Reload(c *fiber.Ctx) error {
	ps, err := h.Catalog.Load(reqCtx(c), session(c))
	if err != nil {
		return fail(c, "catalog.load", err)
	}
	applog.Info(c, "catalog.reload", map[string]any{"count": len(ps)})
	return c.JSON(fiber.Map{"count": len(ps)})
}
