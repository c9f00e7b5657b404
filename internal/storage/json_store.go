package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/brightwell/internal/models"
)

// document is the on-disk layout of the JSON store.
type document struct {
	Version      int                     `json:"version"`
	Settings     models.Settings         `json:"settings"`
	Habits       map[string]models.Habit `json:"habits"`
	Moods        []models.MoodEntry      `json:"moods"`
	Hydration    []models.HydrationEntry `json:"hydration"`
	LastReminder *time.Time              `json:"last_reminder,omitempty"`
}

// JSONStore keeps every record in a single JSON file, rewritten on each change.
type JSONStore struct {
	mu   sync.Mutex
	path string
	doc  *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(s.path); err == nil {
		return s.load()
	}

	s.doc = &document{
		Version:  1,
		Settings: models.DefaultSettings(),
		Habits:   make(map[string]models.Habit),
	}
	return s.commit(func() { s.doc = nil })
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Habits == nil {
		doc.Habits = make(map[string]models.Habit)
	}
	for id, h := range doc.Habits {
		if h.CompletionDates == nil {
			h.CompletionDates = models.DaySet{}
			doc.Habits[id] = h
		}
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

// commit saves the document and runs rollback if the write fails, leaving
// memory and file in agreement.
func (s *JSONStore) commit(rollback func()) error {
	if err := s.save(); err != nil {
		rollback()
		return err
	}
	return nil
}

// save writes to a temp file and renames it over the store so a crash never leaves half a file.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) ready() error {
	if s.doc == nil {
		return ErrNotInitialized
	}
	return nil
}

func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return models.Settings{}, err
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	prev := s.doc.Settings
	s.doc.Settings = settings
	return s.commit(func() { s.doc.Settings = prev })
}

func (s *JSONStore) nameTaken(name, exceptID string) bool {
	for id, h := range s.doc.Habits {
		if id != exceptID && h.DeletedAt == nil && sameName(h.Name, name) {
			return true
		}
	}
	return false
}

func cloneHabit(h models.Habit) models.Habit {
	h.CompletionDates = h.CompletionDates.Clone()
	if h.DeletedAt != nil {
		t := *h.DeletedAt
		h.DeletedAt = &t
	}
	return h
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	if s.nameTaken(habit.Name, habit.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, habit.Name)
	}
	return s.putHabit(habit)
}

func (s *JSONStore) putHabit(habit models.Habit) error {
	habit = cloneHabit(habit)
	habit.CreatedAt = normalize(habit.CreatedAt)
	if habit.DeletedAt != nil {
		t := normalize(*habit.DeletedAt)
		habit.DeletedAt = &t
	}
	return s.replaceHabit(habit)
}

// replaceHabit stores habit and saves, restoring the previous version if the save fails.
func (s *JSONStore) replaceHabit(habit models.Habit) error {
	prev, existed := s.doc.Habits[habit.ID]
	s.doc.Habits[habit.ID] = habit
	return s.commit(func() {
		if existed {
			s.doc.Habits[habit.ID] = prev
		} else {
			delete(s.doc.Habits, habit.ID)
		}
	})
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return models.Habit{}, err
	}
	h, ok := s.doc.Habits[id]
	if !ok || h.DeletedAt != nil {
		return models.Habit{}, ErrNotFound
	}
	return cloneHabit(h), nil
}

func (s *JSONStore) GetHabitByName(name string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return models.Habit{}, err
	}
	for _, h := range s.doc.Habits {
		if h.DeletedAt == nil && sameName(h.Name, name) {
			return cloneHabit(h), nil
		}
	}
	return models.Habit{}, ErrNotFound
}

func (s *JSONStore) GetAllHabits(includeDeleted bool) ([]models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}

	habits := make([]models.Habit, 0, len(s.doc.Habits))
	for _, h := range s.doc.Habits {
		if includeDeleted || h.DeletedAt == nil {
			habits = append(habits, cloneHabit(h))
		}
	}
	sort.Slice(habits, func(i, j int) bool {
		if !habits[i].CreatedAt.Equal(habits[j].CreatedAt) {
			return habits[i].CreatedAt.Before(habits[j].CreatedAt)
		}
		return habits[i].Name < habits[j].Name
	})
	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	return s.putHabit(habit)
}

func (s *JSONStore) ToggleHabitCompletion(id, day string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return false, err
	}
	h, ok := s.doc.Habits[id]
	if !ok || h.DeletedAt != nil {
		return false, ErrNotFound
	}
	h = cloneHabit(h)
	done := h.ToggleCompletion(day)
	if err := s.replaceHabit(h); err != nil {
		return false, err
	}
	return done, nil
}

func (s *JSONStore) DeleteHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	h, ok := s.doc.Habits[id]
	if !ok || h.DeletedAt != nil {
		return ErrNotFound
	}
	h = cloneHabit(h)
	now := normalize(time.Now())
	h.DeletedAt = &now
	return s.replaceHabit(h)
}

func (s *JSONStore) RestoreHabit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	h, ok := s.doc.Habits[id]
	if !ok || h.DeletedAt == nil {
		return ErrNotFound
	}
	if s.nameTaken(h.Name, id) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, h.Name)
	}
	h = cloneHabit(h)
	h.DeletedAt = nil
	return s.replaceHabit(h)
}

func (s *JSONStore) AddMoodEntry(entry models.MoodEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	entry.Timestamp = normalize(entry.Timestamp)
	prev := s.doc.Moods
	s.doc.Moods = upsert(prev, entry, func(e models.MoodEntry) string { return e.ID })
	return s.commit(func() { s.doc.Moods = prev })
}

// GetMoodEntries returns the journal newest first; ties keep the later insert first.
func (s *JSONStore) GetMoodEntries() ([]models.MoodEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	entries := make([]models.MoodEntry, 0, len(s.doc.Moods))
	for i := len(s.doc.Moods) - 1; i >= 0; i-- {
		entries = append(entries, s.doc.Moods[i])
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })
	return entries, nil
}

func (s *JSONStore) DeleteMoodEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	prev := s.doc.Moods
	next, ok := without(prev, func(e models.MoodEntry) bool { return e.ID == id })
	if !ok {
		return ErrNotFound
	}
	s.doc.Moods = next
	return s.commit(func() { s.doc.Moods = prev })
}

func (s *JSONStore) AddHydrationEntry(entry models.HydrationEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	entry.Timestamp = normalize(entry.Timestamp)
	prev := s.doc.Hydration
	s.doc.Hydration = upsert(prev, entry, func(e models.HydrationEntry) string { return e.ID })
	return s.commit(func() { s.doc.Hydration = prev })
}

// GetHydrationEntries returns the log newest first; ties keep the later insert first.
func (s *JSONStore) GetHydrationEntries() ([]models.HydrationEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	entries := make([]models.HydrationEntry, 0, len(s.doc.Hydration))
	for i := len(s.doc.Hydration) - 1; i >= 0; i-- {
		entries = append(entries, s.doc.Hydration[i])
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })
	return entries, nil
}

func (s *JSONStore) DeleteHydrationEntry(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	prev := s.doc.Hydration
	next, ok := without(prev, func(e models.HydrationEntry) bool { return e.ID == id })
	if !ok {
		return ErrNotFound
	}
	s.doc.Hydration = next
	return s.commit(func() { s.doc.Hydration = prev })
}

// upsert returns a new slice with item replacing the element of the same id, or appended.
// list itself is never written to.
func upsert[T any](list []T, item T, id func(T) string) []T {
	out := make([]T, 0, len(list)+1)
	replaced := false
	for _, e := range list {
		if id(e) == id(item) {
			e = item
			replaced = true
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, item)
	}
	return out
}

// without returns a new slice minus the first element matching, and whether one matched.
func without[T any](list []T, match func(T) bool) ([]T, bool) {
	for i, e := range list {
		if match(e) {
			out := make([]T, 0, len(list)-1)
			out = append(out, list[:i]...)
			return append(out, list[i+1:]...), true
		}
	}
	return list, false
}

func (s *JSONStore) LastReminder() (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return time.Time{}, false, err
	}
	if s.doc.LastReminder == nil {
		return time.Time{}, false, nil
	}
	return *s.doc.LastReminder, true, nil
}

func (s *JSONStore) RecordReminder(at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	prev := s.doc.LastReminder
	t := normalize(at)
	s.doc.LastReminder = &t
	return s.commit(func() { s.doc.LastReminder = prev })
}
