package cart

import (
	"encoding/json"
	"errors"
	"math"
)

// SnapshotKey is the fixed key the cart snapshot is persisted under.
const SnapshotKey = "carrito"

var ErrBadPrice = errors.New("precio is not a valid amount")

// LineItem is one product's presence in the cart. Display fields and prices
// are copied at add-time and never refreshed from the catalog.
type LineItem struct {
	ID           int64   `json:"id"`
	Nombre       string  `json:"nombre"`
	Imagen       string  `json:"imagen"`
	Precio       float64 `json:"precio"`
	PrecioNormal float64 `json:"precio_normal"`
	Cantidad     int     `json:"cantidad"`
}

// Cart is an ordered sequence of line items, unique by product id. The empty
// cart is a valid state, not a deletion. All transitions are synchronous and
// total: operations on an unknown id report found=false and change nothing.
type Cart struct {
	items []LineItem
}

func New() *Cart { return &Cart{} }

// FromSnapshot rehydrates a cart from a persisted JSON snapshot. A missing,
// unparsable, or ill-formed snapshot (duplicate ids, cantidad < 1, broken
// prices) yields an empty cart rather than an error.
func FromSnapshot(data []byte) *Cart {
	if len(data) == 0 {
		return New()
	}
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return New()
	}
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if it.Cantidad < 1 || seen[it.ID] || !validAmount(it.Precio) {
			return New()
		}
		seen[it.ID] = true
	}
	return &Cart{items: items}
}

// Snapshot serializes the full line-item sequence for persistence.
func (c *Cart) Snapshot() ([]byte, error) {
	if c.items == nil {
		return json.Marshal([]LineItem{})
	}
	return json.Marshal(c.items)
}

// Add merges a product into the cart. If a line item with the same id already
// exists its cantidad grows by 1 and its price fields stay as they were at
// first add. Otherwise a new line item is appended with cantidad 1 and
// precio_normal defaulted to precio when absent. Invalid prices are rejected
// here instead of being trusted into the state.
func (c *Cart) Add(item LineItem) error {
	if !validAmount(item.Precio) {
		return ErrBadPrice
	}
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Cantidad++
			return nil
		}
	}
	item.Cantidad = 1
	if !validAmount(item.PrecioNormal) || item.PrecioNormal <= 0 {
		item.PrecioNormal = item.Precio
	}
	c.items = append(c.items, item)
	return nil
}

// Increment raises cantidad by 1 for the matching line item. No upper bound
// is enforced; stock limits are a catalog concern.
func (c *Cart) Increment(id int64) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Cantidad++
			return true
		}
	}
	return false
}

// Decrement lowers cantidad by 1 but never below 1; at the floor it is a
// no-op, not a removal. Reports whether the id was found.
func (c *Cart) Decrement(id int64) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			if c.items[i].Cantidad > 1 {
				c.items[i].Cantidad--
			}
			return true
		}
	}
	return false
}

// SetQuantity sets cantidad to max(1, n) for the matching line item.
func (c *Cart) SetQuantity(id int64, n int) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			if n < 1 {
				n = 1
			}
			c.items[i].Cantidad = n
			return true
		}
	}
	return false
}

// Remove deletes the line item entirely. Removing an absent id is a no-op.
func (c *Cart) Remove(id int64) bool {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Total is sum(precio * cantidad) over all line items, recomputed on every
// read.
func (c *Cart) Total() float64 {
	total := 0.0
	for _, it := range c.items {
		total += it.Precio * float64(it.Cantidad)
	}
	return total
}

func (c *Cart) HasItems() bool { return len(c.items) > 0 }

func (c *Cart) Len() int { return len(c.items) }

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func validAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
