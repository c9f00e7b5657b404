// Package reminder decides when a hydration reminder is due and runs the
// periodic check behind `remind --watch`.
package reminder

import (
	"fmt"
	"time"

	"github.com/julianstephens/brightwell/internal/engine"
	"github.com/julianstephens/brightwell/internal/models"
)

// Reason explains a Due decision.
type Reason string

const (
	ReasonDue      Reason = "due"
	ReasonDisabled Reason = "reminders disabled"
	ReasonGoalMet  Reason = "goal already met"
	ReasonRecent   Reason = "drank or was reminded recently"
)

// State is everything the decision depends on.
type State struct {
	Settings     models.Settings
	Entries      []models.HydrationEntry
	LastReminder time.Time // zero if never reminded
	Now          time.Time
	Today        string
}

// Due reports whether a reminder should fire: reminders are enabled, today's
// total is below the goal, and neither a drink nor a reminder happened within
// the last interval.
func Due(s State) (bool, Reason) {
	if !s.Settings.RemindersEnabled {
		return false, ReasonDisabled
	}
	if engine.DailyHydrationTotal(s.Entries, s.Today) >= s.Settings.HydrationGoalMl {
		return false, ReasonGoalMet
	}

	interval := time.Duration(s.Settings.ReminderIntervalMin) * time.Minute
	last := s.LastReminder
	for _, e := range s.Entries {
		if e.Timestamp.After(last) {
			last = e.Timestamp
		}
	}
	if !last.IsZero() && s.Now.Sub(last) < interval {
		return false, ReasonRecent
	}
	return true, ReasonDue
}

// Message is the reminder text for the current progress.
func Message(totalMl, goalMl int) string {
	remaining := goalMl - totalMl
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("💧 Time to hydrate! %d/%d ml today, %d ml to go.", totalMl, goalMl, remaining)
}
