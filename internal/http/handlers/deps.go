package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"bargainbay/internal/config"
	applog "bargainbay/internal/log"
	"bargainbay/internal/services"
)

// Remote is everything the engine needs from the remote service.
type Remote interface {
	services.CatalogGateway
	services.OrderGateway
	services.AuthGateway
}

type Deps struct {
	Sessions *services.SessionStore
	Auth     *services.AuthService
	Catalog  *services.CatalogService

	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	SearchHandler   *SearchHandler
	CategoryHandler *CategoryHandler
	CartHandler     *CartHandler
	WishlistHandler *WishlistHandler
	RatingHandler   *RatingHandler
	OrderHandler    *OrderHandler
	AdminHandler    *AdminHandler

	// LoginLimit caps POST /login per IP per 10 minutes; 0 means 5.
	LoginLimit int
}

func NewDeps(cfg config.Config, remote Remote, creds services.CredentialStore, ratings *services.Ratings) (*Deps, error) {
	book, err := services.NewCouponBook(cfg.Coupons)
	if err != nil {
		return nil, err
	}
	sessions := services.NewSessionStore()
	authSvc := &services.AuthService{Gateway: remote, Creds: creds, Ratings: ratings}
	catalogSvc := services.NewCatalogService(remote)
	cartSvc := services.NewCartService(book)
	orderSvc := services.NewOrderService(remote)
	wishSvc := services.NewWishlistService()

	return &Deps{
		Sessions: sessions,
		Auth:     authSvc,
		Catalog:  catalogSvc,

		AuthHandler:     &AuthHandler{Auth: authSvc, Catalog: catalogSvc, Sessions: sessions},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc, Ratings: ratings},
		SearchHandler:   &SearchHandler{Catalog: catalogSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
		RatingHandler:   &RatingHandler{Ratings: ratings},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		AdminHandler:    &AdminHandler{Catalog: catalogSvc},
	}, nil
}

// catalogLoaded fetches the product snapshot on first use after login.
func catalogLoaded(catalog *services.CatalogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := catalog.EnsureLoaded(reqCtx(c), session(c)); err != nil {
			return fail(c, "catalog.load", err)
		}
		return c.Next()
	}
}

// Mount registers the session middleware and every route on app.
func (d *Deps) Mount(app *fiber.App) {
	app.Use(Sessions(d.Sessions, d.Auth))

	limit := d.LoginLimit
	if limit == 0 {
		limit = 5
	}
	app.Post("/login", limiter.New(limiter.Config{
		Max:        limit,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	app.Post("/register", d.AuthHandler.Register)
	app.Post("/logout", d.AuthHandler.Logout)

	user := RequireUser()
	loaded := catalogLoaded(d.Catalog)

	app.Get("/products", user, loaded, d.ProductHandler.List)
	app.Post("/products/reload", user, d.ProductHandler.Reload)
	app.Get("/products/suggest", user, loaded, d.SearchHandler.Suggest)
	app.Post("/products/suggest/:id", user, loaded, d.SearchHandler.Select)
	app.Get("/categories", user, loaded, d.CategoryHandler.List)

	app.Get("/cart", user, d.CartHandler.View)
	app.Post("/cart", user, loaded, d.CartHandler.Add)
	app.Post("/cart/coupon", user, d.CartHandler.Coupon)
	app.Post("/cart/:id/qty", user, d.CartHandler.ChangeQty)
	app.Delete("/cart/:id", user, d.CartHandler.Remove)

	app.Get("/wishlist", user, d.WishlistHandler.List)
	app.Post("/wishlist/:id", user, loaded, d.WishlistHandler.Toggle)

	app.Get("/ratings/:id", user, d.RatingHandler.Get)
	app.Post("/ratings/:id", user, d.RatingHandler.Rate)

	app.Get("/orders", user, d.OrderHandler.List)
	app.Get("/orders/view", user, d.OrderHandler.Page)
	app.Post("/orders", user, d.OrderHandler.Place)
	app.Post("/orders/:id/cancel", user, d.OrderHandler.Cancel)

	admin := app.Group("/admin", RequireAdmin())
	admin.Post("/products", d.AdminHandler.CreateProduct)
	admin.Delete("/products/:id", d.AdminHandler.DeleteProduct)
}
