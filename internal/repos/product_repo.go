package repos

import (
	"opticaluz/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
  p.id, p.seccion, s.nombre_seccion, p.nombre,
  p.precio_normal, p.precio_oferta, p.en_oferta, p.en_stock, p.cantidad,
  COALESCE(p.imagen_1,'') AS imagen_1, COALESCE(p.imagen_2,'') AS imagen_2,
  p.created_at, COALESCE(p.updated_at,'') AS updated_at`

func (r *ProductRepo) List() ([]domain.Producto, error) {
	var out []domain.Producto
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM productos p JOIN secciones s ON s.seccion = p.seccion
	  ORDER BY p.created_at DESC, p.id DESC
	`)
	return out, err
}

func (r *ProductRepo) ListBySeccion(seccion string) ([]domain.Producto, error) {
	var out []domain.Producto
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM productos p JOIN secciones s ON s.seccion = p.seccion
	  WHERE p.seccion = ?
	  ORDER BY p.created_at DESC, p.id DESC
	`, seccion)
	return out, err
}

func (r *ProductRepo) Get(id int64) (domain.Producto, error) {
	var p domain.Producto
	err := r.db.Get(&p, `
	  SELECT `+productCols+`
	  FROM productos p JOIN secciones s ON s.seccion = p.seccion
	  WHERE p.id = ?
	`, id)
	return p, err
}

func (r *ProductRepo) Search(q string, limit int) ([]domain.Producto, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []domain.Producto
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM productos p JOIN secciones s ON s.seccion = p.seccion
	  WHERE LOWER(p.nombre) LIKE ?
	  ORDER BY p.nombre
	  LIMIT ?
	`, "%"+q+"%", limit)
	return out, err
}

func (r *ProductRepo) Insert(p domain.Producto) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO productos
	    (seccion, nombre, precio_normal, precio_oferta, en_oferta, en_stock, cantidad, imagen_1, imagen_2, created_at)
	  VALUES (?,?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, p.Seccion, p.Nombre, p.PrecioNormal, p.PrecioOferta, p.EnOferta, p.EnStock, p.Cantidad, p.Imagen1, p.Imagen2)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites the admin-editable fields (pricing, offer, stock, count).
func (r *ProductRepo) Update(id int64, precioNormal, precioOferta float64, enOferta, enStock bool, cantidad int) error {
	_, err := r.db.Exec(`
	  UPDATE productos
	  SET precio_normal = ?, precio_oferta = ?, en_oferta = ?, en_stock = ?, cantidad = ?,
	      updated_at = CURRENT_TIMESTAMP
	  WHERE id = ?
	`, precioNormal, precioOferta, enOferta, enStock, cantidad, id)
	return err
}

func (r *ProductRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM productos WHERE id = ?`, id)
	return err
}

// LowStock lists products at or below the alert threshold, for the admin
// inventory notifications.
func (r *ProductRepo) LowStock(threshold int) ([]domain.Producto, error) {
	var out []domain.Producto
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM productos p JOIN secciones s ON s.seccion = p.seccion
	  WHERE p.cantidad <= ?
	  ORDER BY p.cantidad ASC, p.nombre
	`, threshold)
	return out, err
}
