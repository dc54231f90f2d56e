package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Connection settings applied by the driver to every pooled connection.
// _txlock=immediate makes BeginTx issue BEGIN IMMEDIATE.
var connParams = []string{
	"_pragma=busy_timeout(5000)",
	"_pragma=foreign_keys(1)",
	"_txlock=immediate",
}

// OpenDB opens the cache database at path and applies migrations.
//
// A file database runs in WAL mode so readers never block on the writer.
// The in-memory database is pinned to one connection; each new connection
// would otherwise get its own empty database.
func OpenDB(path string) (*sql.DB, error) {
	memory := path == MemoryPath
	params := connParams
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
		params = append([]string{"_pragma=journal_mode(WAL)"}, params...)
	}

	database, err := sql.Open("sqlite", path+"?"+strings.Join(params, "&"))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if memory {
		database.SetMaxOpenConns(1)
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("connect %s: %w", path, err)
	}
	if err := Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return database, nil
}
