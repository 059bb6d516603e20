package services_test

import (
	"math"
	"testing"

	"opticaluz/internal/cart"
	"opticaluz/internal/repos"
	"opticaluz/internal/services"
)

func newCartService(t *testing.T) (*services.CartService, *repos.KVRepo) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	kv := repos.NewKVRepo(db)
	return services.NewCartService(kv, repos.NewProductRepo(db)), kv
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

// Seeded product 1 is on sale: 189.90 normal, 149.90 oferta.
func TestAddUsesEffectivePrice(t *testing.T) {
	svc, _ := newCartService(t)

	if err := svc.Add("sid-1", 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	cv := svc.View("sid-1")
	if cv.Count != 1 {
		t.Fatalf("expected 1 line, got %d", cv.Count)
	}
	it := cv.Items[0]
	if it.Cantidad != 2 {
		t.Fatalf("expected cantidad 2, got %d", it.Cantidad)
	}
	if !approx(it.Precio, 149.90) || !approx(it.PrecioNormal, 189.90) {
		t.Fatalf("unexpected prices: %v / %v", it.Precio, it.PrecioNormal)
	}
	if !approx(cv.Total, 299.80) {
		t.Fatalf("unexpected total: %v", cv.Total)
	}
}

func TestSnapshotSurvivesServiceRestart(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	kv := repos.NewKVRepo(db)
	prods := repos.NewProductRepo(db)

	first := services.NewCartService(kv, prods)
	if err := first.Add("sid-2", 2, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	// A fresh service over the same store sees the same cart.
	second := services.NewCartService(kv, prods)
	cv := second.View("sid-2")
	if cv.Count != 1 || cv.Items[0].ID != 2 {
		t.Fatalf("snapshot not rehydrated: %+v", cv)
	}
}

func TestAddRejectsOutOfStock(t *testing.T) {
	svc, _ := newCartService(t)

	// Product 5 is seeded with en_stock = 0.
	if err := svc.Add("sid-3", 5, 1); err != services.ErrSinStock {
		t.Fatalf("expected ErrSinStock, got %v", err)
	}
	if cv := svc.View("sid-3"); cv.Count != 0 {
		t.Fatalf("cart should stay empty, got %d lines", cv.Count)
	}
}

func TestGarbageSnapshotResetsToEmpty(t *testing.T) {
	svc, kv := newCartService(t)

	if err := kv.Put("sid-4", cart.SnapshotKey, []byte(`{"broken`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if cv := svc.View("sid-4"); cv.Count != 0 {
		t.Fatalf("expected empty cart after corrupt snapshot, got %d lines", cv.Count)
	}
}

func TestMutationsOnUnknownIDDoNotPersist(t *testing.T) {
	svc, kv := newCartService(t)

	if svc.Increment("sid-5", 999) {
		t.Fatal("increment of unknown id reported found")
	}
	if svc.Remove("sid-5", 999) {
		t.Fatal("remove of unknown id reported found")
	}
	if _, ok, err := kv.Get("sid-5", cart.SnapshotKey); err != nil || ok {
		t.Fatalf("no snapshot should be written for no-ops (ok=%v err=%v)", ok, err)
	}
}

func TestSetQuantityAndDecrementFloor(t *testing.T) {
	svc, _ := newCartService(t)

	if err := svc.Add("sid-6", 4, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if !svc.SetQuantity("sid-6", 4, 5) {
		t.Fatal("setquantity: not found")
	}
	if cv := svc.View("sid-6"); cv.Items[0].Cantidad != 5 {
		t.Fatalf("expected cantidad 5, got %d", cv.Items[0].Cantidad)
	}

	if !svc.SetQuantity("sid-6", 4, 0) {
		t.Fatal("setquantity: not found")
	}
	if cv := svc.View("sid-6"); cv.Items[0].Cantidad != 1 {
		t.Fatalf("quantity should clamp to 1, got %d", cv.Items[0].Cantidad)
	}

	// Already at one unit; decrement keeps it there.
	if !svc.Decrement("sid-6", 4) {
		t.Fatal("decrement: not found")
	}
	if cv := svc.View("sid-6"); cv.Items[0].Cantidad != 1 {
		t.Fatalf("decrement should floor at 1, got %d", cv.Items[0].Cantidad)
	}
}
