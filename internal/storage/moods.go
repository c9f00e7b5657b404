package storage

import (
	"fmt"

	"github.com/julianstephens/brightwell/internal/models"
)

func (s *SQLiteStore) AddMoodEntry(entry models.MoodEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO mood_entries (id, emoji, category, note, timestamp)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			emoji = excluded.emoji,
			category = excluded.category,
			note = excluded.note,
			timestamp = excluded.timestamp`,
		entry.ID, entry.Emoji, entry.Category, entry.Note, formatTimestamp(entry.Timestamp))
	return err
}

// GetMoodEntries returns the journal newest first.
func (s *SQLiteStore) GetMoodEntries() ([]models.MoodEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, emoji, category, note, timestamp
		FROM mood_entries ORDER BY timestamp DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.MoodEntry
	for rows.Next() {
		var e models.MoodEntry
		var ts string
		if err := rows.Scan(&e.ID, &e.Emoji, &e.Category, &e.Note, &ts); err != nil {
			return nil, err
		}
		e.Timestamp, err = parseTimestamp(ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp for mood entry %s: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) DeleteMoodEntry(id string) error {
	return affectedOne(s.db.Exec("DELETE FROM mood_entries WHERE id = ?", id))
}
