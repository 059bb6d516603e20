package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"opticaluz/internal/cart"
)

var ErrPagoNoIniciado = errors.New("no se pudo iniciar el pago")

// CheckoutService hands the cart off to the external purchase channels: a
// WhatsApp message-composition link and a payment-session endpoint. Both
// consume the line items read-only; neither mutates the cart. The payment
// request is single-shot with no retry.
type CheckoutService struct {
	Phone      string // shop WhatsApp number, digits only
	PaymentURL string
	Token      string
	HTTP       *http.Client
}

func NewCheckoutService(phone, paymentURL, token string) *CheckoutService {
	return &CheckoutService{
		Phone:      phone,
		PaymentURL: paymentURL,
		Token:      token,
		HTTP:       &http.Client{Timeout: 10 * time.Second},
	}
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// WhatsAppMessage composes the order text the customer sends to the shop.
func (s *CheckoutService) WhatsAppMessage(items []cart.LineItem) string {
	var b strings.Builder
	b.WriteString("Hola, quiero hacer una compra:\n")
	total := decimal.Zero
	for _, it := range items {
		line := decimal.NewFromFloat(it.Precio).Mul(decimal.NewFromInt(int64(it.Cantidad)))
		fmt.Fprintf(&b, "- %dx %s - S/ %s\n", it.Cantidad, it.Nombre, line.StringFixed(2))
		total = total.Add(line)
	}
	fmt.Fprintf(&b, "Total: S/ %s", total.StringFixed(2))
	return b.String()
}

// WhatsAppLink returns the wa.me URL carrying the composed message.
func (s *CheckoutService) WhatsAppLink(items []cart.LineItem) string {
	return "https://wa.me/" + s.Phone + "?text=" + url.QueryEscape(s.WhatsAppMessage(items))
}

type preferenceItem struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type preferenceRequest struct {
	Items []preferenceItem `json:"items"`
}

type preferenceResponse struct {
	InitPoint string `json:"init_point"`
}

// CreatePayment posts the cart to the payment provider and returns the
// redirect URL for the hosted checkout. One attempt only.
func (s *CheckoutService) CreatePayment(ctx context.Context, items []cart.LineItem) (string, error) {
	if s.PaymentURL == "" {
		return "", ErrPagoNoIniciado
	}
	pref := preferenceRequest{Items: make([]preferenceItem, 0, len(items))}
	for _, it := range items {
		pref.Items = append(pref.Items, preferenceItem{
			Title:     it.Nombre,
			Quantity:  it.Cantidad,
			UnitPrice: decimal.NewFromFloat(it.Precio).Round(2).InexactFloat64(),
		})
	}
	body, err := json.Marshal(pref)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.PaymentURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("payment api status %d: %w", resp.StatusCode, ErrPagoNoIniciado)
	}

	var out preferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.InitPoint == "" {
		return "", ErrPagoNoIniciado
	}
	return out.InitPoint, nil
}
