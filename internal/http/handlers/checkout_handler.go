package handlers

import (
	applog "opticaluz/internal/log"
	"opticaluz/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler hands the cart to the external purchase channels. Routes
// sit behind RequireCliente; the cart store itself never checks the session.
type CheckoutHandler struct {
	Cart     *services.CartService
	Checkout *services.CheckoutService
}

// POST /checkout/whatsapp
func (h *CheckoutHandler) WhatsApp(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv := h.Cart.View(sid)
	if cv.Count == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "el carrito está vacío"})
	}
	link := h.Checkout.WhatsAppLink(cv.Items)
	applog.Audit(c, "checkout.whatsapp", map[string]any{"items": cv.Count, "total": cv.Total})
	return c.JSON(fiber.Map{"url": link})
}

// POST /checkout/pago
func (h *CheckoutHandler) Pago(c *fiber.Ctx) error {
	sid := ensureSID(c)
	cv := h.Cart.View(sid)
	if cv.Count == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "el carrito está vacío"})
	}
	initPoint, err := h.Checkout.CreatePayment(c.Context(), cv.Items)
	if err != nil {
		applog.Error(c, "checkout.pago.fail", err, map[string]any{"items": cv.Count})
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "error iniciando el pago"})
	}
	applog.Audit(c, "checkout.pago", map[string]any{"items": cv.Count, "total": cv.Total})
	return c.JSON(fiber.Map{"init_point": initPoint})
}
