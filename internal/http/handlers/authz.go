package handlers

import (
	applog "opticaluz/internal/log"
	"opticaluz/internal/services"

	"github.com/gofiber/fiber/v2"
)

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login?role=admin")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || !u.EsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Acceso denegado"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequireCliente gates the profile page and the checkout handoffs; the cart
// itself stays open to anonymous sessions.
func RequireCliente(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login?role=cliente")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil || !u.EsCliente() {
			return c.Redirect("/login?role=cliente")
		}
		c.Locals("user", u)
		return c.Next()
	}
}
