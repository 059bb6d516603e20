package repos

import (
	"opticaluz/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = `id, nombre, apellidos, email, celular, dni, password_hash, role`

func (r *UserRepo) ByEmail(email string) (*domain.Usuario, error) {
	var u domain.Usuario
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM usuarios WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) ByID(id string) (*domain.Usuario, error) {
	var u domain.Usuario
	err := r.DB.Get(&u, `SELECT `+userCols+` FROM usuarios WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Insert(u domain.Usuario) error {
	_, err := r.DB.Exec(`
	  INSERT INTO usuarios(id,nombre,apellidos,email,celular,dni,password_hash,role)
	  VALUES(?,?,?,?,?,?,?,?)
	`, u.ID, u.Nombre, u.Apellidos, u.Email, u.Celular, u.DNI, u.Hash, u.Role)
	return err
}

// AdminExists backs the login page's admin-registration gate: once one admin
// account exists, admin self-registration is closed.
func (r *UserRepo) AdminExists() (bool, error) {
	var n int
	if err := r.DB.Get(&n, `SELECT COUNT(*) FROM usuarios WHERE role='admin'`); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepo) ListClientes() ([]domain.Usuario, error) {
	var out []domain.Usuario
	err := r.DB.Select(&out, `SELECT `+userCols+` FROM usuarios WHERE role='cliente' ORDER BY apellidos, nombre`)
	return out, err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
                          VALUES(?,?,CURRENT_TIMESTAMP)
                          ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.Usuario, error) {
	var u domain.Usuario
	err := r.DB.Get(&u, `
      SELECT u.id,u.nombre,u.apellidos,u.email,u.celular,u.dni,u.password_hash,u.role
      FROM sessions s
      JOIN usuarios u ON u.id=s.user_id
      WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

// DeleteClienteCascade removes a cliente together with their sessions and any
// persisted cart snapshots tied to those sessions.
func (r *UserRepo) DeleteClienteCascade(userID string) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var sessionIDs []string
	if err := tx.Select(&sessionIDs, `SELECT id FROM sessions WHERE user_id=?`, userID); err != nil {
		return err
	}

	if len(sessionIDs) > 0 {
		query, args, err := sqlx.In(`DELETE FROM kv_store WHERE ns IN (?)`, sessionIDs)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}
		query, args, err = sqlx.In(`DELETE FROM sessions WHERE id IN (?)`, sessionIDs)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(query, args...); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(`DELETE FROM usuarios WHERE id=? AND role='cliente'`, userID); err != nil {
		return err
	}

	return tx.Commit()
}
