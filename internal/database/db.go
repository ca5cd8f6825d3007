package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the sqlite connection used for the forecast history store
type DB struct {
	*sql.DB
}

// NewDB opens (creating if needed) the history database under dataDir
func NewDB(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "engagemeter.db")
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	database := &DB{DB: db}
	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("History database initialized", "path", dbPath)
	return database, nil
}

// migrate creates the necessary tables
func (db *DB) migrate() error {
	query := `CREATE TABLE IF NOT EXISTS forecasts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		day_of_week TEXT NOT NULL,
		language TEXT NOT NULL,
		platform TEXT NOT NULL,
		keyword TEXT NOT NULL,
		hashtag TEXT NOT NULL,
		campaign_name TEXT NOT NULL,
		likes REAL NOT NULL,
		shares REAL NOT NULL,
		comments REAL NOT NULL,
		toxicity REAL NOT NULL,
		impressions REAL NOT NULL,
		engagement_rate REAL NOT NULL,
		emotion TEXT NOT NULL,
		advisory_count INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_forecasts_created_at ON forecasts(created_at);`

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create forecasts table: %w", err)
	}
	return nil
}
