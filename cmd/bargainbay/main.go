package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"bargainbay/internal/client"
	"bargainbay/internal/config"
	"bargainbay/internal/http/handlers"
	applog "bargainbay/internal/log"
	"bargainbay/internal/repos"
	"bargainbay/internal/services"
)

func main() {
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg := config.Load()

	// Optional file logging
	var out io.Writer = os.Stdout
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			defer f.Close()
			out = io.MultiWriter(os.Stdout, f)
		}
	}
	log.SetOutput(out)
	if err := applog.Setup(out, cfg.LogLevel); err != nil {
		log.Printf("[warn] bad log level %q: %v", cfg.LogLevel, err)
	}

	kv, err := repos.Open(sigCtx, cfg.Store)
	if err != nil {
		log.Fatal(err)
	}
	defer kv.Close()

	api := client.New(cfg.APIBase, cfg.RequestTimeout)
	ratings := services.NewRatings(sigCtx, repos.NewRatingRepo(kv))
	deps, err := handlers.NewDeps(cfg, api, repos.NewCredentialRepo(kv), ratings)
	if err != nil {
		log.Fatal(err)
	}

	app := fiber.New(fiber.Config{
		Views:        handlers.Views(),
		ErrorHandler: handlers.ErrorHandler,
		BodyLimit:    1 << 20, // 1 MiB
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{Output: out}))
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Security check failed. Please refresh and try again."})
		},
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })

	// ---------- App handlers ----------
	deps.Mount(app)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Page not found"})
	})

	go func() {
		applog.Info(nil, "server.start", map[string]any{"port": cfg.Port, "api_base": cfg.APIBase})
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("[server] %v", err)
			stop()
		}
	}()

	<-sigCtx.Done()
	applog.Info(nil, "server.stop", nil)
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		applog.Error(nil, "server.shutdown.fail", err, nil)
	}
}
