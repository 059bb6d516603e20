package repos

import (
	"opticaluz/internal/domain"

	"github.com/jmoiron/sqlx"
)

type HeroRepo struct{ db *sqlx.DB }

func NewHeroRepo(db *sqlx.DB) *HeroRepo { return &HeroRepo{db: db} }

func (r *HeroRepo) Get() (domain.Hero, error) {
	var h domain.Hero
	err := r.db.Get(&h, `
	  SELECT id, title, COALESCE(description,'') AS description,
	         COALESCE(fondo_grande,'') AS fondo_grande,
	         COALESCE(fondo_pequeno,'') AS fondo_pequeno,
	         COALESCE(anuncio,'') AS anuncio,
	         COALESCE(updated_at,'') AS updated_at
	  FROM hero WHERE id = 1
	`)
	return h, err
}

// Update rewrites the banner texts; image filenames are only replaced when a
// new upload provided one (empty means keep the current file).
func (r *HeroRepo) Update(h domain.Hero) error {
	_, err := r.db.Exec(`
	  UPDATE hero SET
	    title = ?, description = ?,
	    fondo_grande  = CASE WHEN ? != '' THEN ? ELSE fondo_grande END,
	    fondo_pequeno = CASE WHEN ? != '' THEN ? ELSE fondo_pequeno END,
	    anuncio       = CASE WHEN ? != '' THEN ? ELSE anuncio END,
	    updated_at = CURRENT_TIMESTAMP
	  WHERE id = 1
	`, h.Title, h.Description,
		h.FondoGrande, h.FondoGrande,
		h.FondoPequeno, h.FondoPequeno,
		h.Anuncio, h.Anuncio)
	return err
}
