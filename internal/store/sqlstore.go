package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// SQLStore is the database-backed Backend shared by the sqlite and postgres
// configurations; only the Dialect differs between them. Grounded on
// internal/database/dialect.go's driver-selection pattern, generalized from
// one table per domain entity to one generic store_records table shared by
// every collection.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLStore opens (and initializes, if new) a SQL-backed store using the
// given dialect and driver-specific data source name.
func OpenSQLStore(dialect Dialect, dsn string) (*SQLStore, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", dialect.DriverName(), err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s store: %w", dialect.DriverName(), err)
	}
	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("init %s store: %w", dialect.DriverName(), err)
		}
	}
	return &SQLStore{db: db, dialect: dialect}, nil
}

func (s *SQLStore) LoadAll(collection string) (map[string]json.RawMessage, error) {
	rows, err := s.db.Query(`SELECT id, data FROM store_records WHERE collection = `+s.dialect.Placeholder(1), collection)
	if err != nil {
		return nil, fmt.Errorf("query collection %s: %w", collection, err)
	}
	defer rows.Close()

	records := map[string]json.RawMessage{}
	for rows.Next() {
		var id string
		var data []byte
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan collection %s: %w", collection, err)
		}
		records[id] = json.RawMessage(data)
	}
	return records, rows.Err()
}

// SaveAll replaces a collection's full contents within a single transaction:
// the existing rows are cleared and every record reinserted, giving the same
// all-or-nothing guarantee the file backend gets from tempfile+rename.
func (s *SQLStore) SaveAll(collection string, records map[string]json.RawMessage) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save for %s: %w", collection, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM store_records WHERE collection = `+s.dialect.Placeholder(1), collection); err != nil {
		return fmt.Errorf("clear collection %s: %w", collection, err)
	}
	upsert := s.dialect.UpsertStatement()
	for id, data := range records {
		if _, err := tx.Exec(upsert, collection, id, string(data)); err != nil {
			return fmt.Errorf("write record %s/%s: %w", collection, id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save for %s: %w", collection, err)
	}
	return nil
}

func (s *SQLStore) LoadOne(collection, id string) (json.RawMessage, bool, error) {
	row := s.db.QueryRow(
		`SELECT data FROM store_records WHERE collection = `+s.dialect.Placeholder(1)+` AND id = `+s.dialect.Placeholder(2),
		collection, id,
	)
	var data []byte
	if err := row.Scan(&data); err == sql.ErrNoRows {
		return nil, false, nil
	} else if err != nil {
		return nil, false, fmt.Errorf("load record %s/%s: %w", collection, id, err)
	}
	return json.RawMessage(data), true, nil
}

func (s *SQLStore) SaveOne(collection, id string, data json.RawMessage) error {
	if _, err := s.db.Exec(s.dialect.UpsertStatement(), collection, id, string(data)); err != nil {
		return fmt.Errorf("save record %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *SQLStore) Close() error { return s.db.Close() }
