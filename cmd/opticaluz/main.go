package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"opticaluz/internal/config"
	"opticaluz/internal/http/handlers"
	applog "opticaluz/internal/log"
	"opticaluz/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	deps := handlers.NewDeps(db, cfg)

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{
				"Message": "Algo salió mal. Inténtalo de nuevo.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Algo salió mal. Inténtalo de nuevo.")
			}
			return nil
		},
	})
	// Global body size guard; product images come in via multipart
	app.Server().MaxRequestBodySize = 4 << 20 // 4 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach user to context if logged in (for templates/headers)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := deps.AuthSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/static/") || strings.HasPrefix(p, "/img/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", map[string]any{"form": c.FormValue("csrf")})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "La verificación de seguridad falló. Actualiza la página e inténtalo de nuevo."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	log.Printf("[static] /static -> ./web/static")
	log.Printf("[static] /img    -> %s", mediaDir)

	app.Static("/static", "./web/static")
	// Guarded media to avoid traversal
	app.Get("/img/*", func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(mediaDir, clean), true)
	})

	// ---------- Public pages ----------
	app.Get("/", deps.Catalog.Home)
	app.Get("/seccion/:id", deps.Catalog.Seccion)
	app.Get("/categoria/:id", deps.Catalog.Seccion)
	app.Get("/producto/:id", deps.Catalog.Detalle)
	app.Get("/buscar", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.Search.Search)

	// Cart
	app.Get("/carrito", deps.Cart.View)
	app.Post("/carrito", deps.Cart.Add)
	app.Post("/carrito/incrementar", deps.Cart.Increment)
	app.Post("/carrito/disminuir", deps.Cart.Decrement)
	app.Post("/carrito/cantidad", deps.Cart.SetQuantity)
	app.Post("/carrito/eliminar", deps.Cart.Remove)

	// API
	api := app.Group("/api/v1")
	api.Get("/carrito", deps.Cart.Badge)
	api.Get("/hero", deps.Catalog.HeroJSON)
	api.Get("/admin-existe", deps.Auth.AdminExists)

	// Auth routes (login throttled)
	app.Get("/login", deps.Auth.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Demasiados intentos. Inténtalo más tarde."})
		},
	}), deps.Auth.Login)
	app.Get("/registro", deps.Auth.RegisterForm)
	app.Post("/registro", deps.Auth.Register)
	app.Post("/logout", deps.Auth.Logout)

	// Customer area
	app.Get("/perfil", handlers.RequireCliente(deps.AuthSvc), deps.Auth.Perfil)
	app.Post("/checkout/whatsapp", handlers.RequireCliente(deps.AuthSvc), deps.Checkout.WhatsApp)
	app.Post("/checkout/pago", handlers.RequireCliente(deps.AuthSvc), deps.Checkout.Pago)

	// Admin
	admin := app.Group("/admin", handlers.RequireAdmin(deps.AuthSvc))
	admin.Get("/", deps.Admin.Dashboard)
	admin.Get("/hero", deps.Admin.HeroForm)
	admin.Post("/hero", deps.Admin.HeroUpdate)
	admin.Get("/productos", deps.Admin.Productos)
	admin.Post("/productos", deps.Admin.ProductoAdd)
	admin.Post("/productos/:id", deps.Admin.ProductoUpdate)
	admin.Post("/productos/:id/eliminar", deps.Admin.ProductoDelete)
	admin.Get("/inventario", deps.Admin.Inventario)
	admin.Get("/clientes", deps.Admin.Clientes)
	admin.Post("/clientes/:id/eliminar", deps.Admin.ClienteDelete)
	admin.Get("/secciones", deps.Admin.Secciones)
	api.Get("/admin/inventario", handlers.RequireAdmin(deps.AuthSvc), deps.Admin.InventarioJSON)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "Página no encontrada"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
