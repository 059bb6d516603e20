package services

import (
	"errors"

	"opticaluz/internal/cart"
	applog "opticaluz/internal/log"
	"opticaluz/internal/repos"
)

var ErrSinStock = errors.New("producto agotado")

// CartStorage is the durable key-value collaborator the cart persists to.
type CartStorage interface {
	Get(ns, key string) ([]byte, bool, error)
	Put(ns, key string, val []byte) error
}

// CartService owns the session-scoped cart lifecycle: rehydrate the snapshot,
// apply one transition, write the whole snapshot back. Writes are
// fire-and-forget; a failed write leaves the current response correct but the
// snapshot stale, which is logged rather than surfaced.
type CartService struct {
	Store CartStorage
	Prods *repos.ProductRepo
}

func NewCartService(store CartStorage, prods *repos.ProductRepo) *CartService {
	return &CartService{Store: store, Prods: prods}
}

type CartView struct {
	Items []cart.LineItem
	Total float64
	Count int
}

func (s *CartService) load(sid string) *cart.Cart {
	data, ok, err := s.Store.Get(sid, cart.SnapshotKey)
	if err != nil {
		applog.Error(nil, "cart.load", err, map[string]any{"sid": sid})
		return cart.New()
	}
	if !ok {
		return cart.New()
	}
	return cart.FromSnapshot(data)
}

func (s *CartService) persist(sid string, c *cart.Cart) {
	data, err := c.Snapshot()
	if err == nil {
		err = s.Store.Put(sid, cart.SnapshotKey, data)
	}
	if err != nil {
		// The in-memory state already served this request; only the
		// snapshot is stale.
		applog.Error(nil, "cart.persist", err, map[string]any{"sid": sid})
	}
}

// Add resolves the product's current effective price and merges qty units
// into the session cart. Out-of-stock products are rejected.
func (s *CartService) Add(sid string, productID int64, qty int) error {
	if qty < 1 {
		qty = 1
	}
	p, err := s.Prods.Get(productID)
	if err != nil {
		return err
	}
	if !p.EnStock {
		return ErrSinStock
	}

	c := s.load(sid)
	if err := c.Add(cart.LineItem{
		ID:           p.ID,
		Nombre:       p.Nombre,
		Imagen:       p.Imagen1,
		Precio:       p.PrecioVigente(),
		PrecioNormal: p.PrecioNormal,
	}); err != nil {
		return err
	}
	for i := 1; i < qty; i++ {
		c.Increment(p.ID)
	}
	s.persist(sid, c)
	return nil
}

func (s *CartService) Increment(sid string, id int64) bool {
	c := s.load(sid)
	found := c.Increment(id)
	if found {
		s.persist(sid, c)
	}
	return found
}

func (s *CartService) Decrement(sid string, id int64) bool {
	c := s.load(sid)
	found := c.Decrement(id)
	if found {
		s.persist(sid, c)
	}
	return found
}

func (s *CartService) SetQuantity(sid string, id int64, n int) bool {
	c := s.load(sid)
	found := c.SetQuantity(id, n)
	if found {
		s.persist(sid, c)
	}
	return found
}

func (s *CartService) Remove(sid string, id int64) bool {
	c := s.load(sid)
	found := c.Remove(id)
	if found {
		s.persist(sid, c)
	}
	return found
}

func (s *CartService) View(sid string) CartView {
	c := s.load(sid)
	return CartView{Items: c.Items(), Total: c.Total(), Count: c.Len()}
}
