package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// KVRepo is the durable key-value store behind the cart snapshots: one value
// per (namespace, key), fully overwritten on every write.
type KVRepo struct{ db *sqlx.DB }

func NewKVRepo(db *sqlx.DB) *KVRepo { return &KVRepo{db: db} }

// Get returns the stored value and whether it exists.
func (r *KVRepo) Get(ns, key string) ([]byte, bool, error) {
	var v string
	err := r.db.Get(&v, `SELECT v FROM kv_store WHERE ns = ? AND k = ?`, ns, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(v), true, nil
}

// Put overwrites the value under (ns, key), creating the row if needed.
func (r *KVRepo) Put(ns, key string, val []byte) error {
	_, err := r.db.Exec(`
		INSERT INTO kv_store(ns, k, v, updated_at)
		VALUES(?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(ns, k) DO UPDATE SET v = excluded.v, updated_at = CURRENT_TIMESTAMP
	`, ns, key, string(val))
	return err
}

func (r *KVRepo) Delete(ns, key string) error {
	_, err := r.db.Exec(`DELETE FROM kv_store WHERE ns = ? AND k = ?`, ns, key)
	return err
}
