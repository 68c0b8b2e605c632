// Package clienttest provides an in-memory stand-in for the remote
// catalog/order/auth service.
package clienttest

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/shopspring/decimal"

	"bargainbay/internal/domain"
)

const (
	UserEmail  = "alice@bargainbay.test"
	AdminEmail = "admin@bargainbay.test"
	Password   = "Passw0rd!"
)

type account struct {
	password string
	role     string
}

type Fake struct {
	mu       sync.Mutex
	products []domain.Product
	orders   []domain.Order
	accounts map[string]account
	nextID   int

	listDelay func(n int) time.Duration
	failPlace bool

	listCalls  int
	placed     []domain.PlaceOrder
	requestIDs []string
}

func NewFake() *Fake {
	return &Fake{
		products: []domain.Product{
			{ID: "p1", Name: "Red Shoe", Description: "Canvas", Price: decimal.NewFromInt(10), Category: "Fashion"},
			{ID: "p2", Name: "Blue Shoe", Description: "Leather", Price: decimal.NewFromInt(5), Category: "fashion"},
			{ID: "p3", Name: "Phone X", Description: "Smartphone", Price: decimal.RequireFromString("499.99"), Category: "Mobiles"},
			{ID: "p4", Name: "Mystery Box", Description: "No category", Price: decimal.RequireFromString("7.50")},
		},
		accounts: map[string]account{
			UserEmail:  {password: Password, role: domain.RoleUser},
			AdminEmail: {password: Password, role: domain.RoleAdmin},
		},
		nextID: 100,
	}
}

// SetListDelay delays the n-th (1-based) GET /products by d(n).
func (f *Fake) SetListDelay(d func(n int) time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listDelay = d
}

// SetFailPlace makes POST /orders answer 500.
func (f *Fake) SetFailPlace(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failPlace = fail
}

// Token is the bearer token the fake issues for email.
func Token(email string) string { return "tok-" + email }

func (f *Fake) Products() []domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Product(nil), f.products...)
}

func (f *Fake) Placed() []domain.PlaceOrder {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.PlaceOrder(nil), f.placed...)
}

func (f *Fake) RequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestIDs...)
}

// SetStatus moves an order as the remote fulfilment pipeline would.
func (f *Fake) SetStatus(orderID string, st domain.OrderStatus) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if string(f.orders[i].ID) == orderID {
			f.orders[i].Status = st
		}
	}
}

// Server starts the fake; it is closed with the test.
func (f *Fake) Server(t testing.TB) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(adaptor.FiberApp(f.App()))
	t.Cleanup(srv.Close)
	return srv
}

func (f *Fake) App() *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		f.mu.Lock()
		f.requestIDs = append(f.requestIDs, c.Get("X-Request-ID"))
		f.mu.Unlock()
		return c.Next()
	})

	app.Post("/auth/login", f.login)
	app.Post("/auth/register", f.register)

	authed := app.Group("", f.auth)
	authed.Get("/products", f.listProducts)
	authed.Post("/admin/products", f.admin, f.createProduct)
	authed.Delete("/admin/products/:id", f.admin, f.deleteProduct)
	authed.Get("/orders", f.listOrders)
	authed.Post("/orders", f.placeOrder)
	authed.Post("/orders/:id/cancel", f.cancelOrder)
	return app
}

func (f *Fake) login(c *fiber.Ctx) error {
	var in struct{ Email, Password string }
	if err := c.BodyParser(&in); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	f.mu.Lock()
	acc, ok := f.accounts[strings.ToLower(in.Email)]
	f.mu.Unlock()
	if !ok || acc.password != in.Password {
		return c.Status(fiber.StatusUnauthorized).SendString("bad credentials")
	}
	return c.JSON(domain.Credentials{Token: Token(strings.ToLower(in.Email)), Role: acc.role})
}

func (f *Fake) register(c *fiber.Ctx) error {
	var in struct{ Name, Email, Password string }
	if err := c.BodyParser(&in); err != nil || in.Email == "" {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	email := strings.ToLower(in.Email)
	if _, ok := f.accounts[email]; ok {
		return c.Status(fiber.StatusConflict).SendString("email already exists")
	}
	f.accounts[email] = account{password: in.Password, role: domain.RoleUser}
	return c.SendStatus(fiber.StatusCreated)
}

func (f *Fake) auth(c *fiber.Ctx) error {
	tok := strings.TrimPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
	f.mu.Lock()
	acc, ok := f.accounts[strings.TrimPrefix(tok, "tok-")]
	f.mu.Unlock()
	if !ok || !strings.HasPrefix(tok, "tok-") {
		return c.SendStatus(fiber.StatusUnauthorized)
	}
	c.Locals("role", acc.role)
	return c.Next()
}

func (f *Fake) admin(c *fiber.Ctx) error {
	if c.Locals("role") != domain.RoleAdmin {
		return c.SendStatus(fiber.StatusForbidden)
	}
	return c.Next()
}

func (f *Fake) listProducts(c *fiber.Ctx) error {
	f.mu.Lock()
	f.listCalls++
	n := f.listCalls
	delay := f.listDelay
	out := append([]domain.Product(nil), f.products...)
	f.mu.Unlock()
	if delay != nil {
		time.Sleep(delay(n))
	}
	return c.JSON(out)
}

func (f *Fake) createProduct(c *fiber.Ctx) error {
	var in domain.ProductInput
	if err := c.BodyParser(&in); err != nil || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).SendString("name required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p := domain.Product{
		ID: domain.ID(fmt.Sprintf("p%d", f.nextID)), Name: in.Name, Description: in.Description,
		Price: in.Price, Category: in.Category, ImageURL: in.ImageURL,
	}
	f.products = append(f.products, p)
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (f *Fake) deleteProduct(c *fiber.Ctx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if string(p.ID) == c.Params("id") {
			f.products = append(f.products[:i], f.products[i+1:]...)
			return c.SendStatus(fiber.StatusNoContent)
		}
	}
	return c.Status(fiber.StatusNotFound).SendString("no such product")
}

func (f *Fake) listOrders(c *fiber.Ctx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return c.JSON(append([]domain.Order{}, f.orders...))
}

func (f *Fake) placeOrder(c *fiber.Ctx) error {
	var in domain.PlaceOrder
	if err := c.BodyParser(&in); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPlace {
		return c.Status(fiber.StatusInternalServerError).SendString("warehouse offline")
	}
	total := decimal.Zero
	for _, it := range in.Items {
		for _, p := range f.products {
			if string(p.ID) == it.ProductID {
				total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
			}
		}
	}
	f.nextID++
	o := domain.Order{
		ID: domain.ID(fmt.Sprintf("o%d", f.nextID)), TotalAmount: total, Status: domain.StatusPlaced,
		DeliveryAddress: in.DeliveryAddress, PaymentMethod: in.PaymentMethod,
	}
	f.orders = append(f.orders, o)
	f.placed = append(f.placed, in)
	return c.Status(fiber.StatusCreated).JSON(o)
}

func (f *Fake) cancelOrder(c *fiber.Ctx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.orders {
		if string(f.orders[i].ID) == c.Params("id") {
			f.orders[i].Status = domain.StatusCancelled
			return c.SendStatus(fiber.StatusOK)
		}
	}
	return c.Status(fiber.StatusNotFound).SendString("no such order")
}
