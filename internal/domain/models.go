package domain

// Producto field names follow the catalog wire shape the storefront and the
// admin console exchange (en_oferta / precio_oferta / imagen_1 ...).
type Producto struct {
	ID            int64   `db:"id" json:"id"`
	Seccion       string  `db:"seccion" json:"seccion"`
	NombreSeccion string  `db:"nombre_seccion" json:"nombre_seccion"`
	Nombre        string  `db:"nombre" json:"nombre"`
	PrecioNormal  float64 `db:"precio_normal" json:"precio_normal"`
	PrecioOferta  float64 `db:"precio_oferta" json:"precio_oferta"`
	EnOferta      bool    `db:"en_oferta" json:"en_oferta"`
	EnStock       bool    `db:"en_stock" json:"en_stock"`
	Cantidad      int     `db:"cantidad" json:"cantidad"`
	Imagen1       string  `db:"imagen_1" json:"imagen_1"`
	Imagen2       string  `db:"imagen_2" json:"imagen_2"`
	CreatedAt     string  `db:"created_at" json:"-"`
	UpdatedAt     string  `db:"updated_at" json:"-"`
}

// PrecioVigente resolves the unit price in effect: the promotional price when
// the product is on offer, the normal price otherwise. The cart copies this
// value at add-time and never refreshes it.
func (p Producto) PrecioVigente() float64 {
	if p.EnOferta && p.PrecioOferta > 0 {
		return p.PrecioOferta
	}
	return p.PrecioNormal
}

type Seccion struct {
	Seccion       string `db:"seccion" json:"seccion"`
	NombreSeccion string `db:"nombre_seccion" json:"nombre_seccion"`
}

// Hero is the single homepage banner row the admin console edits.
type Hero struct {
	ID           int64  `db:"id" json:"-"`
	Title        string `db:"title" json:"title"`
	Description  string `db:"description" json:"description"`
	FondoGrande  string `db:"fondo_grande" json:"fondo_grande"`
	FondoPequeno string `db:"fondo_pequeno" json:"fondo_pequeno"`
	Anuncio      string `db:"anuncio" json:"anuncio"`
	UpdatedAt    string `db:"updated_at" json:"-"`
}
