package storage

import (
	"fmt"

	"github.com/julianstephens/brightwell/internal/models"
)

func (s *SQLiteStore) AddHydrationEntry(entry models.HydrationEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO hydration_entries (id, amount_ml, timestamp, day)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			amount_ml = excluded.amount_ml,
			timestamp = excluded.timestamp,
			day = excluded.day`,
		entry.ID, entry.AmountMl, formatTimestamp(entry.Timestamp), entry.Day)
	return err
}

// GetHydrationEntries returns the log newest first.
func (s *SQLiteStore) GetHydrationEntries() ([]models.HydrationEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, amount_ml, timestamp, day
		FROM hydration_entries ORDER BY timestamp DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HydrationEntry
	for rows.Next() {
		var e models.HydrationEntry
		var ts string
		if err := rows.Scan(&e.ID, &e.AmountMl, &ts, &e.Day); err != nil {
			return nil, err
		}
		e.Timestamp, err = parseTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp for hydration entry %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) DeleteHydrationEntry(id string) error {
	return affectedOne(s.db.Exec("DELETE FROM hydration_entries WHERE id = ?", id))
}
