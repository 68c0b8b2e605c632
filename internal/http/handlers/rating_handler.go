package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bargainbay/internal/log"
	"bargainbay/internal/services"
	"bargainbay/internal/validate"
)

type RatingHandler struct {
	Ratings *services.Ratings
}

// GET /ratings/:id
func (h *RatingHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	rec, _ := h.Ratings.Get(id)
	return c.JSON(fiber.Map{"productId": id, "rating": rec, "stars": h.Ratings.Stars(id)})
}

// POST /ratings/:id  stars=1..5
func (h *RatingHandler) Rate(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "id", "invalid product id")
	}
	stars, ok := validate.Stars(c.FormValue("stars"))
	if !ok {
		return badRequest(c, "stars", services.ErrStarsOutOfRange.Error())
	}
	rec, err := h.Ratings.Rate(reqCtx(c), id, stars)
	if err != nil {
		return fail(c, "rating.rate", err)
	}
	applog.Audit(c, "rating.rate", map[string]any{"product": id, "stars": stars})
	return c.JSON(fiber.Map{"productId": id, "rating": rec, "stars": h.Ratings.Stars(id)})
}
