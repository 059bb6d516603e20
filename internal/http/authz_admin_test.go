package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAdminRoutesRedirectAnonymous(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/admin/", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect to login, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login?role=admin" {
		t.Fatalf("unexpected redirect target: %s", loc)
	}
}

func TestAdminRoutesDenyCliente(t *testing.T) {
	app, _, deps := newTestApp(t)

	// Bind a session directly to the seeded cliente account.
	if err := deps.Users.BindSession("sid-cliente", "u-maria"); err != nil {
		t.Fatalf("bind session: %v", err)
	}

	for _, path := range []string{"/admin/", "/admin/inventario", "/api/v1/admin/inventario"} {
		req := httptest.NewRequest("GET", path, nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-cliente"})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("%s: expected 403 for cliente, got %d", path, resp.StatusCode)
		}
	}
}

func TestAdminRoutesAllowAdmin(t *testing.T) {
	app, _, deps := newTestApp(t)

	if err := deps.Users.BindSession("sid-admin", "u-admin"); err != nil {
		t.Fatalf("bind session: %v", err)
	}

	for _, path := range []string{"/admin/", "/admin/inventario", "/admin/clientes", "/api/v1/admin/inventario"} {
		req := httptest.NewRequest("GET", path, nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "sid-admin"})
		resp, err := app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: expected 200 for admin, got %d", path, resp.StatusCode)
		}
	}
}

func TestPerfilRequiresCliente(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/perfil", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect for anonymous profile, got %d", resp.StatusCode)
	}
}
