package handlers

import (
	"errors"

	applog "opticaluz/internal/log"
	"opticaluz/internal/services"
	"opticaluz/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /carrito
func (h *CartHandler) View(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv := h.Cart.View(sid)
	return render(c, "carrito", fiber.Map{"Cart": cv})
}

// POST /carrito  (form: productId, cantidad)
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := ensureSID(c)
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("producto inválido")
	}
	qty := validate.Qty(c.FormValue("cantidad"))

	if err := h.Cart.Add(sid, id, qty); err != nil {
		if errors.Is(err, services.ErrSinStock) {
			applog.Info(c, "cart.add.sinstock", map[string]any{"product": id})
			return c.Status(fiber.StatusConflict).SendString("producto agotado")
		}
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": id})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "Producto no disponible"})
	}
	applog.Info(c, "cart.add", map[string]any{"product": id, "qty": qty})
	return c.Redirect("/carrito")
}

// POST /carrito/incrementar
func (h *CartHandler) Increment(c *fiber.Ctx) error {
	return h.mutate(c, "cart.increment", func(sid string, id int64) bool {
		return h.Cart.Increment(sid, id)
	})
}

// POST /carrito/disminuir
func (h *CartHandler) Decrement(c *fiber.Ctx) error {
	return h.mutate(c, "cart.decrement", func(sid string, id int64) bool {
		return h.Cart.Decrement(sid, id)
	})
}

// POST /carrito/cantidad  (form: productId, cantidad)
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	n := validate.Qty(c.FormValue("cantidad"))
	return h.mutate(c, "cart.setqty", func(sid string, id int64) bool {
		return h.Cart.SetQuantity(sid, id, n)
	})
}

// POST /carrito/eliminar
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	return h.mutate(c, "cart.remove", func(sid string, id int64) bool {
		return h.Cart.Remove(sid, id)
	})
}

func (h *CartHandler) mutate(c *fiber.Ctx, action string, op func(sid string, id int64) bool) error {
	sid := ensureSID(c)
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("producto inválido")
	}
	// Unknown ids are a no-op for the cart; only the log can tell the
	// difference.
	if found := op(sid, id); !found {
		applog.Info(c, action+".miss", map[string]any{"product": id})
	} else {
		applog.Info(c, action, map[string]any{"product": id})
	}
	return c.Redirect("/carrito")
}

// GET /api/v1/carrito returns badge data for the header.
func (h *CartHandler) Badge(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv := h.Cart.View(sid)
	return c.JSON(fiber.Map{
		"count":     cv.Count,
		"total":     cv.Total,
		"has_items": cv.Count > 0,
	})
}
