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
	// One writer connection keeps the foreign_keys pragma effective and
	// makes :memory: DSNs usable in tests.
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Idempotent baseline data; safe to run every start.
	if err := seedAgents(db); err != nil {
		return nil, err
	}
	if err := seedSettings(db); err != nil {
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

-- Agents
CREATE TABLE IF NOT EXISTS agents(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  email TEXT NOT NULL DEFAULT '',
  photo TEXT NOT NULL DEFAULT '',
  territory TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

-- Properties
CREATE TABLE IF NOT EXISTS properties(
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  reference TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  type TEXT NOT NULL CHECK (type IN ('VILLA','APPARTEMENT','CHALET','DOMAINE','PENTHOUSE','MAISON','TERRAIN')),
  destination TEXT NOT NULL,
  city TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  latitude REAL,
  longitude REAL,
  price INTEGER NOT NULL CHECK (price > 0),
  surface REAL NOT NULL CHECK (surface > 0),
  rooms INTEGER NOT NULL DEFAULT 0 CHECK (rooms >= 0),
  bedrooms INTEGER NOT NULL DEFAULT 0 CHECK (bedrooms >= 0),
  bathrooms INTEGER NOT NULL DEFAULT 0 CHECK (bathrooms >= 0),
  dpe TEXT NOT NULL DEFAULT '',
  badge TEXT NOT NULL DEFAULT '',
  amenities_json TEXT NOT NULL DEFAULT '[]',
  published INTEGER NOT NULL DEFAULT 0,
  featured INTEGER NOT NULL DEFAULT 0,
  agent_id TEXT REFERENCES agents(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_properties_destination ON properties(destination);
CREATE INDEX IF NOT EXISTS idx_properties_type        ON properties(type);
CREATE INDEX IF NOT EXISTS idx_properties_price       ON properties(price);
CREATE INDEX IF NOT EXISTS idx_properties_published   ON properties(published);
CREATE INDEX IF NOT EXISTS idx_properties_created_at  ON properties(created_at);

-- Gallery images (cascade with their property)
CREATE TABLE IF NOT EXISTS property_images(
  id TEXT PRIMARY KEY,
  property_id TEXT NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
  url TEXT NOT NULL,
  alt TEXT NOT NULL DEFAULT '',
  sort_order INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_property_images_property ON property_images(property_id, sort_order);

-- Contact-form leads
CREATE TABLE IF NOT EXISTS leads(
  id TEXT PRIMARY KEY,
  property_id TEXT NULL REFERENCES properties(id) ON DELETE SET NULL,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL DEFAULT '',
  message TEXT NOT NULL,
  read_status INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);

-- Testimonials
CREATE TABLE IF NOT EXISTS testimonials(
  id TEXT PRIMARY KEY,
  author TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '',
  quote TEXT NOT NULL,
  published INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Single-row site settings (WhatsApp widget)
CREATE TABLE IF NOT EXISTS site_settings(
  id INTEGER PRIMARY KEY CHECK (id = 1),
  whatsapp_enabled INTEGER NOT NULL DEFAULT 0,
  whatsapp_number TEXT NOT NULL DEFAULT '',
  whatsapp_message TEXT NOT NULL DEFAULT '',
  updated_at TEXT
);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('USER','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedAgents ensures the core roster exists (idempotent).
func seedAgents(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM agents`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting agent roster")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO agents(id,name,title,phone,email,territory) VALUES
	  ('ag-sophie','Sophie Marchand','Directrice Côte d''Azur','+33 6 12 34 56 78','sophie@maisonazur.fr','cote-dazur'),
	  ('ag-julien','Julien Lefèvre','Conseiller Alpes','+33 6 98 76 54 32','julien@maisonazur.fr','alpes'),
	  ('ag-ines','Inès Caron','Conseillère Paris','+33 6 45 67 89 01','ines@maisonazur.fr','paris')`)

	return tx.Commit()
}

// seedSettings ensures the single settings row exists (idempotent).
func seedSettings(db *sqlx.DB) error {
	_, err := db.Exec(`
		INSERT INTO site_settings(id, whatsapp_enabled, whatsapp_number, whatsapp_message)
		SELECT 1, 1, '+33612345678', 'Bonjour, je souhaite des informations sur un bien.'
		WHERE NOT EXISTS (SELECT 1 FROM site_settings WHERE id = 1)
	`)
	return err
}

// seedUsers ensures one ADMIN and one USER exist (idempotent).
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-admin", "admin@maisonazur.fr", "Admin", "ADMIN", "Azur#2024!"),
		mk("u-claire", "claire@maisonazur.fr", "Claire", "USER", "Azur#2024!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
