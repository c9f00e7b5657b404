package storage

import (
	"strings"
	"time"

	"github.com/julianstephens/brightwell/internal/models"
)

// Provider persists wellness records. Writes are last-write-wins; every
// implementation serialises its own reads and writes.
type Provider interface {
	// Lifecycle. Init creates the store when missing and is safe to repeat:
	// on an existing store it keeps every record and behaves like Load.
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByName(name string) (models.Habit, error)
	GetAllHabits(includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ToggleHabitCompletion(id, day string) (bool, error)
	DeleteHabit(id string) error
	RestoreHabit(id string) error

	// Mood journal, newest first
	AddMoodEntry(models.MoodEntry) error
	GetMoodEntries() ([]models.MoodEntry, error)
	DeleteMoodEntry(id string) error

	// Hydration log, newest first
	AddHydrationEntry(models.HydrationEntry) error
	GetHydrationEntries() ([]models.HydrationEntry, error)
	DeleteHydrationEntry(id string) error

	// Reminders
	LastReminder() (time.Time, bool, error)
	RecordReminder(at time.Time) error

	// Utils
	GetConfigPath() string
}

// New picks the backend from the path: a .json suffix selects the JSON store,
// anything else the SQLite store.
func New(path string) Provider {
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return NewJSONStore(path)
	}
	return NewSQLiteStore(path)
}

// sameName compares habit names the way uniqueness is enforced: trimmed and case-insensitive.
func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
