package recondb

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection used for run persistence.
type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the run database at path and
// applies any pending schema migrations.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening run database: %w", err)
	}

	wrapped := &DB{db}
	if err := wrapped.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}

	return wrapped, nil
}
