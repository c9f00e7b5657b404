package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/brightwell/internal/mood"
)

// MoodEntry is a single mood journal entry. Entries are never edited, only deleted.
type MoodEntry struct {
	ID        string    `json:"id"`
	Emoji     string    `json:"emoji"`
	Category  string    `json:"category"`
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMoodEntry stamps a fresh entry; the category is fixed here and never recomputed.
func NewMoodEntry(emoji, note string, at time.Time) MoodEntry {
	emoji = strings.TrimSpace(emoji)
	return MoodEntry{
		ID:        uuid.New().String(),
		Emoji:     emoji,
		Category:  string(mood.CategoryFor(emoji)),
		Note:      strings.TrimSpace(note),
		Timestamp: at,
	}
}
