package services

import (
	"opticaluz/internal/domain"
	"opticaluz/internal/repos"
)

// LowStockThreshold marks a product for the admin inventory alerts.
const LowStockThreshold = 5

type CatalogService struct {
	Secs  *repos.SectionRepo
	Prods *repos.ProductRepo
}

func NewCatalogService(secs *repos.SectionRepo, prods *repos.ProductRepo) *CatalogService {
	return &CatalogService{Secs: secs, Prods: prods}
}

func (s *CatalogService) ListSecciones() ([]domain.Seccion, error) {
	return s.Secs.List()
}

// SeccionGaleria pairs a section with its products for the home galleries.
type SeccionGaleria struct {
	Seccion   domain.Seccion
	Productos []domain.Producto
}

func (s *CatalogService) Galerias() ([]SeccionGaleria, error) {
	secs, err := s.Secs.List()
	if err != nil {
		return nil, err
	}
	out := make([]SeccionGaleria, 0, len(secs))
	for _, sec := range secs {
		prods, err := s.Prods.ListBySeccion(sec.Seccion)
		if err != nil {
			return nil, err
		}
		out = append(out, SeccionGaleria{Seccion: sec, Productos: prods})
	}
	return out, nil
}

func (s *CatalogService) ProductosPorSeccion(seccion string) ([]domain.Producto, error) {
	return s.Prods.ListBySeccion(seccion)
}

func (s *CatalogService) GetProducto(id int64) (domain.Producto, error) {
	return s.Prods.Get(id)
}

func (s *CatalogService) Buscar(q string, limit int) ([]domain.Producto, error) {
	return s.Prods.Search(q, limit)
}

func (s *CatalogService) Inventario() ([]domain.Producto, error) {
	return s.Prods.List()
}

func (s *CatalogService) AlertasStock() ([]domain.Producto, error) {
	return s.Prods.LowStock(LowStockThreshold)
}
