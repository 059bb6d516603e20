package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Demo catalog + hero if the DB is empty; users are ensured on every
	// start (both idempotent).
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Catalog sections (lentes-sol, monturas, ...)
CREATE TABLE IF NOT EXISTS secciones(
  seccion TEXT PRIMARY KEY,
  nombre_seccion TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS productos(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  seccion TEXT NOT NULL REFERENCES secciones(seccion) ON DELETE RESTRICT,
  nombre TEXT NOT NULL,
  precio_normal NUMERIC NOT NULL CHECK (precio_normal >= 0),
  precio_oferta NUMERIC NOT NULL DEFAULT 0 CHECK (precio_oferta >= 0),
  en_oferta INTEGER NOT NULL DEFAULT 0,
  en_stock INTEGER NOT NULL DEFAULT 1,
  cantidad INTEGER NOT NULL DEFAULT 0 CHECK (cantidad >= 0),
  imagen_1 TEXT,
  imagen_2 TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_productos_seccion ON productos(seccion);
CREATE INDEX IF NOT EXISTS idx_productos_nombre  ON productos(LOWER(nombre));

-- Homepage hero banner: a single editable row.
CREATE TABLE IF NOT EXISTS hero(
  id INTEGER PRIMARY KEY CHECK (id = 1),
  title TEXT NOT NULL,
  description TEXT,
  fondo_grande TEXT,
  fondo_pequeno TEXT,
  anuncio TEXT,
  updated_at TEXT
);

-- Durable key-value snapshots, namespaced per session. The cart lives here
-- under the key 'carrito'.
CREATE TABLE IF NOT EXISTS kv_store(
  ns TEXT NOT NULL,
  k  TEXT NOT NULL,
  v  TEXT NOT NULL,
  updated_at TEXT,
  PRIMARY KEY(ns, k)
);

CREATE TABLE IF NOT EXISTS usuarios(
  id TEXT PRIMARY KEY,
  nombre TEXT NOT NULL,
  apellidos TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL UNIQUE,
  celular TEXT NOT NULL DEFAULT '',
  dni TEXT NOT NULL DEFAULT '',
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('cliente','admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_usuarios_email ON usuarios(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES usuarios(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM secciones`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo secciones/productos/hero")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO secciones(seccion,nombre_seccion) VALUES
	  ('lentes-sol','Lentes de Sol'),
	  ('lentes-medida','Lentes de Medida'),
	  ('monturas','Monturas'),
	  ('accesorios','Accesorios')`)

	tx.MustExec(`INSERT INTO productos
	  (seccion,nombre,precio_normal,precio_oferta,en_oferta,en_stock,cantidad,imagen_1,imagen_2) VALUES
	  ('lentes-sol','Lente Sol Aviador Clásico',189.90,149.90,1,1,12,'productos/aviador-1.jpg','productos/aviador-2.jpg'),
	  ('lentes-sol','Lente Sol Wayfarer Negro',159.90,0,0,1,8,'productos/wayfarer-1.jpg','productos/wayfarer-2.jpg'),
	  ('lentes-medida','Lente Medida Blue Light',249.00,199.00,1,1,5,'productos/bluelight-1.jpg','productos/bluelight-2.jpg'),
	  ('monturas','Montura Acetato Carey',129.50,0,0,1,15,'productos/carey-1.jpg','productos/carey-2.jpg'),
	  ('monturas','Montura Metal Redonda',99.00,0,0,0,0,'productos/redonda-1.jpg','productos/redonda-2.jpg'),
	  ('accesorios','Estuche Rígido Premium',35.00,25.00,1,1,30,'productos/estuche-1.jpg','productos/estuche-2.jpg')`)

	tx.MustExec(`INSERT INTO hero(id,title,description,fondo_grande,fondo_pequeno,anuncio) VALUES
	  (1,'Mira el mundo con otros ojos','Lentes de sol y de medida con hasta 30% de descuento.',
	   'hero/fondo-grande.jpg','hero/fondo-pequeno.jpg','hero/anuncio.jpg')`)

	return tx.Commit()
}

// seedUsers ensures one admin and one demo cliente exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Nombre, Apellidos, Email, Celular, DNI, Role, Hash string
	}
	mk := func(id, nombre, apellidos, email, celular, dni, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Nombre: nombre, Apellidos: apellidos, Email: email,
			Celular: celular, DNI: dni, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "Admin", "Opticaluz", "admin@opticaluz.test", "999999999", "00000000", "admin", "Admin123!"),
		mk("u-maria", "María", "Quispe", "maria@opticaluz.test", "987654321", "45678912", "cliente", "Cliente123"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO usuarios(id,nombre,apellidos,email,celular,dni,password_hash,role)
			VALUES(?,?,?,?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Nombre, x.Apellidos, x.Email, x.Celular, x.DNI, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
