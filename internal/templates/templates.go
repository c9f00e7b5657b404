// Package templates offers ready-made habit bundles.
package templates

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/storage"
)

// All returns a copy of the template catalog.
func All() []models.HabitTemplate {
	out := make([]models.HabitTemplate, len(catalog))
	for i, t := range catalog {
		t.Habits = append([]models.TemplateHabit(nil), t.Habits...)
		out[i] = t
	}
	return out
}

// Get looks a template up by ID.
func Get(id string) (models.HabitTemplate, bool) {
	for _, t := range All() {
		if t.ID == strings.TrimSpace(id) {
			return t, true
		}
	}
	return models.HabitTemplate{}, false
}

// HabitStore is the part of the store Apply needs.
type HabitStore interface {
	AddHabit(models.Habit) error
}

// Result reports which template habits were created and which already existed.
type Result struct {
	Added   []string
	Skipped []string
}

// Apply adds every habit in the template that does not already exist by name.
func Apply(store HabitStore, tmpl models.HabitTemplate, now time.Time) (Result, error) {
	var res Result
	for _, th := range tmpl.Habits {
		err := store.AddHabit(models.NewHabit(th.Name, th.Description, tmpl.Icon, now))
		if errors.Is(err, storage.ErrDuplicateName) {
			res.Skipped = append(res.Skipped, th.Name)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("failed to add %q: %w", th.Name, err)
		}
		res.Added = append(res.Added, th.Name)
	}
	return res, nil
}
