package database

// PostgresSchema is the products table for PostgreSQL.
const PostgresSchema = `
	CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price DOUBLE PRECISION NOT NULL,
		image_url VARCHAR(500) NOT NULL DEFAULT '',
		category VARCHAR(100) NOT NULL DEFAULT 'general',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC, id DESC);
`

// SQLiteSchema is the products table for SQLite. created_at is stored as
// RFC 3339 text in UTC so it sorts lexically.
const SQLiteSchema = `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price REAL NOT NULL,
		image_url TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'general',
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC, id DESC);
`
