package cart_test

import (
	"math"
	"reflect"
	"testing"

	"opticaluz/internal/cart"
)

func lente(id int64, precio float64) cart.LineItem {
	return cart.LineItem{ID: id, Nombre: "Lente Sol Clásico", Imagen: "lente.jpg", Precio: precio}
}

func TestAddMergesSameProduct(t *testing.T) {
	c := cart.New()
	for i := 0; i < 3; i++ {
		if err := c.Add(lente(1, 25.50)); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != 1 {
		t.Fatalf("want one line item, got %d", c.Len())
	}
	it := c.Items()[0]
	if it.Cantidad != 3 {
		t.Fatalf("want cantidad=3, got %d", it.Cantidad)
	}
	if got := c.Total(); got != 76.50 {
		t.Fatalf("want total=76.50, got %v", got)
	}
}

func TestAddLocksPriceAtFirstAdd(t *testing.T) {
	c := cart.New()
	if err := c.Add(lente(1, 10)); err != nil {
		t.Fatal(err)
	}
	// Later adds carry a changed catalog price; the line keeps the first one.
	if err := c.Add(lente(1, 99)); err != nil {
		t.Fatal(err)
	}
	it := c.Items()[0]
	if it.Precio != 10 || it.Cantidad != 2 {
		t.Fatalf("price not locked: %+v", it)
	}
}

func TestAddDefaultsPrecioNormal(t *testing.T) {
	c := cart.New()
	if err := c.Add(lente(1, 80)); err != nil {
		t.Fatal(err)
	}
	if pn := c.Items()[0].PrecioNormal; pn != 80 {
		t.Fatalf("want precio_normal defaulted to 80, got %v", pn)
	}

	c2 := cart.New()
	oferta := lente(2, 60)
	oferta.PrecioNormal = 90
	if err := c2.Add(oferta); err != nil {
		t.Fatal(err)
	}
	if pn := c2.Items()[0].PrecioNormal; pn != 90 {
		t.Fatalf("want precio_normal=90 kept, got %v", pn)
	}
}

func TestAddRejectsBadPrice(t *testing.T) {
	c := cart.New()
	for _, bad := range []float64{math.NaN(), math.Inf(1), -5} {
		if err := c.Add(lente(1, bad)); err == nil {
			t.Fatalf("expected rejection for precio=%v", bad)
		}
	}
	if c.HasItems() {
		t.Fatal("invalid adds must not mutate the cart")
	}
}

func TestDecrementFloorsAtOne(t *testing.T) {
	c := cart.New()
	_ = c.Add(lente(1, 10))
	if found := c.Increment(1); !found {
		t.Fatal("increment lost the item")
	}
	if found := c.Decrement(1); !found || c.Items()[0].Cantidad != 1 {
		t.Fatalf("want cantidad back to 1, got %+v", c.Items()[0])
	}
	// Repeated decrements at the floor are no-ops, never removals.
	for i := 0; i < 4; i++ {
		if found := c.Decrement(1); !found {
			t.Fatal("decrement should still find the item")
		}
	}
	if c.Items()[0].Cantidad != 1 {
		t.Fatalf("floor broken: %+v", c.Items()[0])
	}
}

func TestSetQuantityClamps(t *testing.T) {
	c := cart.New()
	_ = c.Add(lente(1, 10))
	for _, n := range []int{0, -5} {
		if found := c.SetQuantity(1, n); !found {
			t.Fatal("item not found")
		}
		if got := c.Items()[0].Cantidad; got != 1 {
			t.Fatalf("SetQuantity(%d): want 1, got %d", n, got)
		}
	}
	c.SetQuantity(1, 7)
	if got := c.Items()[0].Cantidad; got != 7 {
		t.Fatalf("want 7, got %d", got)
	}
}

func TestUnknownIDIsNotFound(t *testing.T) {
	c := cart.New()
	_ = c.Add(lente(1, 10))
	if c.Increment(42) || c.Decrement(42) || c.SetQuantity(42, 3) || c.Remove(42) {
		t.Fatal("operations on unknown ids must report not found")
	}
	if c.Len() != 1 || c.Items()[0].Cantidad != 1 {
		t.Fatalf("unknown-id ops must not mutate state: %+v", c.Items())
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	c := cart.New()
	_ = c.Add(lente(1, 10))
	if found := c.Remove(1); !found {
		t.Fatal("first remove should find the item")
	}
	before := c.Items()
	if found := c.Remove(1); found {
		t.Fatal("second remove should be a no-op")
	}
	if !reflect.DeepEqual(before, c.Items()) {
		t.Fatal("second remove changed the cart")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := cart.New()
	_ = c.Add(cart.LineItem{ID: 1, Nombre: "Montura Aviador", Imagen: "aviador.jpg", Precio: 120, PrecioNormal: 150})
	_ = c.Add(lente(2, 25.50))
	c.SetQuantity(2, 3)

	data, err := c.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	again := cart.FromSnapshot(data)
	if !reflect.DeepEqual(c.Items(), again.Items()) {
		t.Fatalf("round trip mismatch:\n  %+v\n  %+v", c.Items(), again.Items())
	}
	if again.Total() != c.Total() {
		t.Fatalf("totals diverge: %v vs %v", again.Total(), c.Total())
	}
}

func TestFromSnapshotResetsOnGarbage(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte("not json"),
		[]byte(`{"id":1}`), // object, not a sequence
		[]byte(`[{"id":1,"nombre":"x","precio":10,"cantidad":0}]`),            // below the floor
		[]byte(`[{"id":1,"precio":10,"cantidad":1},{"id":1,"cantidad":2}]`),   // duplicate id
		[]byte(`[{"id":1,"nombre":"x","precio":-4,"precio_normal":-4,"cantidad":1}]`), // broken price
	}
	for _, data := range cases {
		c := cart.FromSnapshot(data)
		if c.HasItems() || c.Total() != 0 {
			t.Fatalf("snapshot %q should rehydrate empty", data)
		}
	}
}

// The walk-through from the storefront: add twice, decrement to the floor,
// then remove.
func TestCartScenario(t *testing.T) {
	c := cart.New()
	item := cart.LineItem{ID: 1, Nombre: "A", Precio: 10.00}
	if err := c.Add(item); err != nil {
		t.Fatal(err)
	}
	if err := c.Add(item); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 || c.Items()[0].Cantidad != 2 || c.Total() != 20 {
		t.Fatalf("after double add: %+v total=%v", c.Items(), c.Total())
	}
	c.Decrement(1)
	if c.Items()[0].Cantidad != 1 || c.Total() != 10 {
		t.Fatalf("after decrement: %+v total=%v", c.Items(), c.Total())
	}
	c.Decrement(1)
	if c.Items()[0].Cantidad != 1 || c.Total() != 10 {
		t.Fatalf("floor decrement changed state: %+v", c.Items())
	}
	c.Remove(1)
	if c.HasItems() || c.Total() != 0 {
		t.Fatalf("cart should be empty, total=%v", c.Total())
	}
}
