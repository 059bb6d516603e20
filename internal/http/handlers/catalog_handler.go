package handlers

import (
	applog "opticaluz/internal/log"
	"opticaluz/internal/repos"
	"opticaluz/internal/services"
	"opticaluz/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CatalogHandler struct {
	Catalog *services.CatalogService
	Hero    *repos.HeroRepo
}

// GET /
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	hero, err := h.Hero.Get()
	if err != nil {
		applog.Error(c, "home.hero", err, nil)
	}
	galerias, err := h.Catalog.Galerias()
	if err != nil {
		applog.Error(c, "home.galerias", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "No se pudo cargar la tienda"})
	}
	return render(c, "home", fiber.Map{"Hero": hero, "Galerias": galerias})
}

// GET /seccion/:id and GET /categoria/:id. The "vertodo" slug lists everything.
func (h *CatalogHandler) Seccion(c *fiber.Ctx) error {
	slug, ok := validate.Seccion(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "seccion"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Sección no encontrada"})
	}

	if slug == "vertodo" {
		productos, err := h.Catalog.Inventario()
		if err != nil {
			applog.Error(c, "seccion.list", err, nil)
			return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "No se pudo cargar la sección"})
		}
		return render(c, "seccion", fiber.Map{"Titulo": "Lentes", "Productos": productos})
	}

	sec, err := h.Catalog.Secs.Get(slug)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Sección no encontrada"})
	}
	productos, err := h.Catalog.ProductosPorSeccion(slug)
	if err != nil {
		applog.Error(c, "seccion.list", err, map[string]any{"seccion": slug})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "No se pudo cargar la sección"})
	}
	return render(c, "seccion", fiber.Map{"Titulo": sec.NombreSeccion, "Seccion": sec, "Productos": productos})
}

// GET /producto/:id
func (h *CatalogHandler) Detalle(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "producto"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}
	p, err := h.Catalog.GetProducto(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Este producto ya no está disponible"})
	}
	return render(c, "producto", fiber.Map{"P": p, "Precio": p.PrecioVigente()})
}

// GET /api/v1/hero
func (h *CatalogHandler) HeroJSON(c *fiber.Ctx) error {
	hero, err := h.Hero.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "hero no disponible"})
	}
	return c.JSON(hero)
}
