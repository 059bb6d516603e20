package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// Walks the storefront cart: browse, add, read the badge, empty it again.
func TestCartAddViewRemoveFlow(t *testing.T) {
	app, _, _ := newTestApp(t)

	// First contact mints sid and csrf cookies.
	respView, err := app.Test(httptest.NewRequest("GET", "/carrito", nil))
	if err != nil {
		t.Fatal(err)
	}
	if respView.StatusCode != http.StatusOK {
		t.Fatalf("GET /carrito: %d", respView.StatusCode)
	}
	sid := extractCookie(respView, "sid")
	csrfTok := extractCookie(respView, "csrf_")
	if sid == "" || csrfTok == "" {
		t.Fatal("sid or csrf cookie missing")
	}

	post := func(path, form string) *http.Response {
		t.Helper()
		req := httptest.NewRequest("POST", path, strings.NewReader("csrf="+csrfTok+"&"+form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		return resp
	}

	if resp := post("/carrito", "productId=1&cantidad=2"); resp.StatusCode != http.StatusFound {
		t.Fatalf("add: expected redirect, got %d", resp.StatusCode)
	}

	badge := func() map[string]any {
		t.Helper()
		req := httptest.NewRequest("GET", "/api/v1/carrito", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		var out map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		return out
	}

	b := badge()
	if b["count"].(float64) != 1 || b["has_items"] != true {
		t.Fatalf("unexpected badge after add: %v", b)
	}

	if resp := post("/carrito/incrementar", "productId=1"); resp.StatusCode != http.StatusFound {
		t.Fatalf("increment: expected redirect, got %d", resp.StatusCode)
	}
	if resp := post("/carrito/eliminar", "productId=1"); resp.StatusCode != http.StatusFound {
		t.Fatalf("remove: expected redirect, got %d", resp.StatusCode)
	}

	b = badge()
	if b["count"].(float64) != 0 || b["has_items"] != false {
		t.Fatalf("cart not empty after remove: %v", b)
	}
}

func TestCartAddOutOfStockConflicts(t *testing.T) {
	app, _, _ := newTestApp(t)

	respView, _ := app.Test(httptest.NewRequest("GET", "/carrito", nil))
	sid := extractCookie(respView, "sid")
	csrfTok := extractCookie(respView, "csrf_")

	// Product 5 is seeded out of stock.
	req := httptest.NewRequest("POST", "/carrito", strings.NewReader("csrf="+csrfTok+"&productId=5&cantidad=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for out-of-stock add, got %d", resp.StatusCode)
	}
}

// Unknown product ids are a no-op; the handler still redirects to the cart
// instead of erroring.
func TestCartMutateUnknownIDRedirects(t *testing.T) {
	app, _, _ := newTestApp(t)

	respView, _ := app.Test(httptest.NewRequest("GET", "/carrito", nil))
	sid := extractCookie(respView, "sid")
	csrfTok := extractCookie(respView, "csrf_")

	req := httptest.NewRequest("POST", "/carrito/disminuir", strings.NewReader("csrf="+csrfTok+"&productId=9999"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	req.AddCookie(&http.Cookie{Name: "csrf_", Value: csrfTok})
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect for unknown id, got %d", resp.StatusCode)
	}
}
