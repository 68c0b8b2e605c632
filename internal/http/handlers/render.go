package handlers

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"

	applog "bargainbay/internal/log"
)

//go:embed templates/*.html
var templateFS embed.FS

// Views builds the template engine over the embedded pages.
func Views() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if s := session(c); s != nil {
		if creds := s.Credentials(); creds.LoggedIn() {
			data["User"] = creds
		}
	}
	if tok, ok := c.Locals("csrf").(string); ok && tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

const friendlyMessage = "Something went wrong. Please try again."

// ErrorHandler logs the error and shows a friendly page without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := friendlyMessage
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < 500 {
		code = fe.Code
		msg = http.StatusText(code)
	}
	applog.Error(c, "server.error", err, map[string]any{"code": code})
	if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
		return c.Status(code).SendString(msg)
	}
	return nil
}
