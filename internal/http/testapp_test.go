package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"opticaluz/internal/config"
	"opticaluz/internal/http/handlers"
	"opticaluz/internal/repos"
)

// newTestApp builds the storefront wired like main, minus rate limiting.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *handlers.Deps) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	cfg := config.Config{MediaDir: t.TempDir(), WhatsAppPhone: "51999999999"}
	deps := handlers.NewDeps(db, cfg)

	engine := html.New("../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := deps.AuthSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	app.Get("/", deps.Catalog.Home)
	app.Get("/seccion/:id", deps.Catalog.Seccion)
	app.Get("/producto/:id", deps.Catalog.Detalle)
	app.Get("/buscar", deps.Search.Search)

	app.Get("/carrito", deps.Cart.View)
	app.Post("/carrito", deps.Cart.Add)
	app.Post("/carrito/incrementar", deps.Cart.Increment)
	app.Post("/carrito/disminuir", deps.Cart.Decrement)
	app.Post("/carrito/cantidad", deps.Cart.SetQuantity)
	app.Post("/carrito/eliminar", deps.Cart.Remove)

	api := app.Group("/api/v1")
	api.Get("/carrito", deps.Cart.Badge)
	api.Get("/hero", deps.Catalog.HeroJSON)
	api.Get("/admin-existe", deps.Auth.AdminExists)

	app.Get("/login", deps.Auth.LoginForm)
	app.Post("/login", deps.Auth.Login)
	app.Get("/registro", deps.Auth.RegisterForm)
	app.Post("/registro", deps.Auth.Register)
	app.Post("/logout", deps.Auth.Logout)
	app.Get("/perfil", handlers.RequireCliente(deps.AuthSvc), deps.Auth.Perfil)

	admin := app.Group("/admin", handlers.RequireAdmin(deps.AuthSvc))
	admin.Get("/", deps.Admin.Dashboard)
	admin.Get("/inventario", deps.Admin.Inventario)
	admin.Get("/clientes", deps.Admin.Clientes)
	api.Get("/admin/inventario", handlers.RequireAdmin(deps.AuthSvc), deps.Admin.InventarioJSON)

	return app, db, deps
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}
