package models

import (
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DaySet is a set of day keys (YYYY-MM-DD).
type DaySet map[string]struct{}

// NewDaySet builds a set from the given keys; duplicates collapse.
func NewDaySet(days ...string) DaySet {
	s := make(DaySet, len(days))
	for _, d := range days {
		s[d] = struct{}{}
	}
	return s
}

func (s DaySet) Has(day string) bool {
	_, ok := s[day]
	return ok
}

// Sorted returns the keys in ascending order.
func (s DaySet) Sorted() []string {
	days := make([]string, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

func (s DaySet) Clone() DaySet {
	c := make(DaySet, len(s))
	for d := range s {
		c[d] = struct{}{}
	}
	return c
}

// MarshalJSON writes the set as a sorted array of keys.
func (s DaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *DaySet) UnmarshalJSON(data []byte) error {
	var days []string
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	*s = NewDaySet(days...)
	return nil
}

// Habit represents a daily practice to track
type Habit struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Icon            string     `json:"icon,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
	CompletionDates DaySet     `json:"completion_dates"`
}

// NewHabit returns a live habit with a fresh id and no completions.
func NewHabit(name, description, icon string, now time.Time) Habit {
	return Habit{
		ID:              uuid.New().String(),
		Name:            strings.TrimSpace(name),
		Description:     strings.TrimSpace(description),
		Icon:            icon,
		CreatedAt:       now,
		CompletionDates: DaySet{},
	}
}

// IsCompletedOn reports whether the habit was marked done on day.
func (h Habit) IsCompletedOn(day string) bool {
	return h.CompletionDates.Has(day)
}

// ToggleCompletion flips the completion state for day and reports the new state.
// Toggling the same day twice restores the original set.
func (h *Habit) ToggleCompletion(day string) bool {
	if h.CompletionDates == nil {
		h.CompletionDates = DaySet{}
	}
	if h.CompletionDates.Has(day) {
		delete(h.CompletionDates, day)
		return false
	}
	h.CompletionDates[day] = struct{}{}
	return true
}
