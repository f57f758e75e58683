package store

import "strings"

// Dialect abstracts the SQL differences between the embedded and remote
// backends, mirroring internal/database/dialect.go but scoped to the single
// generic records table every collection shares instead of one table per
// domain entity.
type Dialect interface {
	// DriverName returns the driver name for sql.Open().
	DriverName() string

	// Placeholder returns the parameter placeholder for the given
	// 1-indexed position: "?" for SQLite, "$1"/"$2"/... for Postgres.
	Placeholder(position int) string

	// UpsertStatement returns the INSERT .. ON CONFLICT statement that
	// writes one (collection, id, data) record, replacing any existing
	// row for that key.
	UpsertStatement() string

	// InitStatements returns the DDL/PRAGMA statements run once when the
	// backend opens its connection.
	InitStatements() []string
}

// SQLiteDialect targets modernc.org/sqlite.
type SQLiteDialect struct{}

func (SQLiteDialect) DriverName() string { return "sqlite" }

func (SQLiteDialect) Placeholder(int) string { return "?" }

func (SQLiteDialect) UpsertStatement() string {
	return `INSERT INTO store_records (collection, id, data) VALUES (?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET data = excluded.data`
}

func (SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		`CREATE TABLE IF NOT EXISTS store_records (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			data TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (collection, id)
		)`,
	}
}

// PostgresDialect targets github.com/lib/pq.
type PostgresDialect struct{}

func (PostgresDialect) DriverName() string { return "postgres" }

func (PostgresDialect) Placeholder(position int) string {
	var b strings.Builder
	b.WriteByte('$')
	b.WriteString(itoa(position))
	return b.String()
}

func (PostgresDialect) UpsertStatement() string {
	return `INSERT INTO store_records (collection, id, data) VALUES ($1, $2, $3)
		ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data`
}

func (PostgresDialect) InitStatements() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS store_records (
			collection TEXT NOT NULL,
			id TEXT NOT NULL,
			data JSONB NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (collection, id)
		)`,
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
