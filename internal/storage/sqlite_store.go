package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/brightwell/internal/logger"
	"github.com/julianstephens/brightwell/internal/migration"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/migrations"
)

// timestampFormat is fixed width in UTC so stored timestamps sort as text.
const timestampFormat = "2006-01-02T15:04:05Z"

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) open() error {
	db, err := sql.Open("sqlite", s.path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One connection serialises every read and write made through this store.
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

// Init creates the database, applies migrations and seeds default settings.
// Running it against an existing database only applies pending migrations.
func (s *SQLiteStore) Init() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}

	runner := migration.NewRunner(s.db, migrations.FS)
	if _, err := runner.ApplyMigrations(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	if count == 0 {
		if err := s.SaveSettings(models.DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrNotInitialized
	}
	if err := s.open(); err != nil {
		return err
	}

	runner := migration.NewRunner(s.db, migrations.FS)
	if err := runner.ValidateVersion(); err != nil {
		return err
	}
	// Older databases pick up new migrations on load.
	if _, err := runner.ApplyMigrations(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying connection, or nil before Init/Load.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}

func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339, value)
}

func nullTimestamp(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTimestamp(*t), Valid: true}
}

// affectedOne turns a zero-row update into ErrNotFound.
func affectedOne(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (s *SQLiteStore) LastReminder() (time.Time, bool, error) {
	var sentAt sql.NullString
	if err := s.db.QueryRow("SELECT MAX(sent_at) FROM reminder_log").Scan(&sentAt); err != nil {
		return time.Time{}, false, err
	}
	if !sentAt.Valid {
		return time.Time{}, false, nil
	}
	t, err := parseTimestamp(sentAt.String)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to parse reminder timestamp: %w", err)
	}
	return t, true, nil
}

func (s *SQLiteStore) RecordReminder(at time.Time) error {
	_, err := s.db.Exec("INSERT INTO reminder_log (sent_at) VALUES (?)", formatTimestamp(at))
	return err
}
