package handlers

import (
	"opticaluz/internal/config"
	"opticaluz/internal/repos"
	"opticaluz/internal/services"

	"github.com/jmoiron/sqlx"
)

// Deps wires repositories, services and handlers from a single DB handle.
type Deps struct {
	KV    *repos.KVRepo
	Prods *repos.ProductRepo
	Secs  *repos.SectionRepo
	Hero  *repos.HeroRepo
	Users *repos.UserRepo

	CartSvc     *services.CartService
	AuthSvc     *services.AuthService
	CatalogSvc  *services.CatalogService
	CheckoutSvc *services.CheckoutService

	Cart     *CartHandler
	Catalog  *CatalogHandler
	Search   *SearchHandler
	Auth     *AuthHandler
	Checkout *CheckoutHandler
	Admin    *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	d := &Deps{
		KV:    repos.NewKVRepo(db),
		Prods: repos.NewProductRepo(db),
		Secs:  repos.NewSectionRepo(db),
		Hero:  repos.NewHeroRepo(db),
		Users: repos.NewUserRepo(db),
	}

	d.CartSvc = services.NewCartService(d.KV, d.Prods)
	d.AuthSvc = &services.AuthService{Users: d.Users}
	d.CatalogSvc = services.NewCatalogService(d.Secs, d.Prods)
	d.CheckoutSvc = services.NewCheckoutService(cfg.WhatsAppPhone, cfg.PaymentAPIURL, cfg.PaymentToken)

	d.Cart = &CartHandler{Cart: d.CartSvc}
	d.Catalog = &CatalogHandler{Catalog: d.CatalogSvc, Hero: d.Hero}
	d.Search = &SearchHandler{Catalog: d.CatalogSvc}
	d.Auth = &AuthHandler{Auth: d.AuthSvc}
	d.Checkout = &CheckoutHandler{Cart: d.CartSvc, Checkout: d.CheckoutSvc}
	d.Admin = &AdminHandler{
		Catalog:  d.CatalogSvc,
		Prods:    d.Prods,
		Hero:     d.Hero,
		Users:    d.Users,
		MediaDir: cfg.MediaDir,
	}
	return d
}
