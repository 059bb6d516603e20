package handlers

import (
	"strings"

	applog "opticaluz/internal/log"
	"opticaluz/internal/services"
	"opticaluz/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type SearchHandler struct {
	Catalog *services.CatalogService
}

// GET /buscar
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		return render(c, "buscar", fiber.Map{"Q": "", "Productos": []any{}, "Count": 0})
	}
	q, ok := validate.Q(rawQ)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("buscar", fiber.Map{
			"Q": "", "Productos": []any{}, "Count": 0, "Err": "Ingresa una palabra válida",
		})
	}
	q = strings.ToLower(q)

	productos, err := h.Catalog.Buscar(q, 20)
	if err != nil {
		applog.Error(c, "search.error", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "No se pudieron cargar los resultados"})
	}
	return render(c, "buscar", fiber.Map{"Q": q, "Productos": productos, "Count": len(productos)})
}
