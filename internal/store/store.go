// Package store persists daily telemetry and reference data in sqlite
// and serves as the report pipeline's document store.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// dateFormat is how calendar dates are stored.
const dateFormat = "2006-01-02"

// Store wraps the SQL database connection with application-specific
// methods.
type Store struct {
	*sql.DB
	path string
}

// New creates a new database connection and initializes the schema.
func New(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Store{
		DB:   sqlDB,
		path: path,
	}

	if err := s.configure(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := s.createSchema(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// configure sets up database pragmas.
func (s *Store) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := s.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}
	return nil
}

func (s *Store) createSchema() error {
	if err := s.createDayRecordsTable(); err != nil {
		return err
	}
	if err := s.createDecisionsTable(); err != nil {
		return err
	}
	if err := s.createProjectsTable(); err != nil {
		return err
	}
	if err := s.createContactsTable(); err != nil {
		return err
	}
	if err := s.createInsightsTable(); err != nil {
		return err
	}
	return s.createPrinciplesTable()
}

func (s *Store) createDayRecordsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS day_records (
		date TEXT PRIMARY KEY,
		sleep_hours REAL DEFAULT 0,
		training_minutes INTEGER DEFAULT 0,
		body_felt INTEGER DEFAULT 0,
		nervous_system TEXT DEFAULT 'regulated',
		focus_hours REAL DEFAULT 0,
		ship_count INTEGER DEFAULT 0,
		what_shipped TEXT DEFAULT '',
		revenue_asks INTEGER DEFAULT 0,
		revenue_amount REAL DEFAULT 0,
		conversations INTEGER DEFAULT 0,
		intros INTEGER DEFAULT 0,
		meetings INTEGER DEFAULT 0,
		posts INTEGER DEFAULT 0,
		study_minutes INTEGER DEFAULT 0,
		insights_logged INTEGER DEFAULT 0,
		practice_minutes INTEGER DEFAULT 0,
		new_contacts INTEGER DEFAULT 0,
		project TEXT DEFAULT '',
		project_hours TEXT DEFAULT '',
		score REAL,
		score_delta REAL,
		components TEXT,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.ExecContext(context.Background(), query)
	return err
}

func (s *Store) createDecisionsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS decisions (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		hypothesis TEXT DEFAULT '',
		chosen_option TEXT DEFAULT '',
		reasoning TEXT DEFAULT '',
		kill_criteria TEXT DEFAULT '',
		review_date TEXT,
		status TEXT DEFAULT 'active',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_decisions_status ON decisions(status);
	`
	_, err := s.ExecContext(context.Background(), query)
	return err
}

func (s *Store) createProjectsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS projects (
		name TEXT PRIMARY KEY,
		stage TEXT DEFAULT 'launched',
		archived INTEGER DEFAULT 0
	);
	`
	_, err := s.ExecContext(context.Background(), query)
	return err
}

func (s *Store) createContactsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS contacts (
		name TEXT PRIMARY KEY,
		priority TEXT DEFAULT 'normal',
		last_touch TEXT
	);
	`
	_, err := s.ExecContext(context.Background(), query)
	return err
}

func (s *Store) createInsightsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS insights (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.ExecContext(context.Background(), query)
	return err
}

func (s *Store) createPrinciplesTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS principles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		reinforced INTEGER DEFAULT 0
	);
	`
	_, err := s.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection gracefully.
func (s *Store) Close() error {
	_, _ = s.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	return s.DB.Close()
}
