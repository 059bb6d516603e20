package repos

import (
	"opticaluz/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SectionRepo struct{ db *sqlx.DB }

func NewSectionRepo(db *sqlx.DB) *SectionRepo { return &SectionRepo{db: db} }

func (r *SectionRepo) List() ([]domain.Seccion, error) {
	var out []domain.Seccion
	err := r.db.Select(&out, `
	  SELECT seccion, nombre_seccion
	  FROM secciones
	  ORDER BY nombre_seccion
	`)
	return out, err
}

func (r *SectionRepo) Get(seccion string) (domain.Seccion, error) {
	var s domain.Seccion
	err := r.db.Get(&s, `SELECT seccion, nombre_seccion FROM secciones WHERE seccion = ?`, seccion)
	return s, err
}
