// Package achievements evaluates the fixed badge catalog against a snapshot of
// the user's records. Nothing is persisted: every call recomputes progress
// from the records it is given.
package achievements

import (
	"github.com/julianstephens/brightwell/internal/constants"
	"github.com/julianstephens/brightwell/internal/engine"
	"github.com/julianstephens/brightwell/internal/models"
)

type ID string

const (
	FirstStep           ID = "first_step"
	HabitMaster         ID = "habit_master"
	PerfectWeek         ID = "perfect_week"
	HydrationHero       ID = "hydration_hero"
	MoodMaster          ID = "mood_master"
	StreakKing          ID = "streak_king"
	EarlyBird           ID = "early_bird"
	ConsistencyChampion ID = "consistency_champion"
)

// Definition describes one badge.
type Definition struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Target      int    `json:"target"`
}

// Evaluated is a definition with the progress computed for one snapshot.
type Evaluated struct {
	Definition
	Progress int  `json:"progress"`
	Unlocked bool `json:"unlocked"`
}

// Percent is progress toward the target, capped at 100.
func (e Evaluated) Percent() int {
	if e.Target <= 0 {
		return 100
	}
	return engine.GoalPercent(e.Progress, e.Target)
}

// Context is the snapshot an evaluation runs against.
type Context struct {
	Habits          []models.Habit
	Moods           []models.MoodEntry
	Hydration       []models.HydrationEntry
	HydrationGoalMl int
	Today           string
}

// Catalog returns the badge definitions in display order.
func Catalog() []Definition {
	return []Definition{
		{FirstStep, "First Step", "Complete your first habit", "🎯", 1},
		{HabitMaster, "Habit Master", "Create 10 habits", "📋", 10},
		{PerfectWeek, "Perfect Week", "Complete all habits for 7 days", "⭐", 7},
		{HydrationHero, "Hydration Hero", "Reach water goal for 7 days", "💧", 7},
		{MoodMaster, "Mood Master", "Log 30 mood entries", "😊", 30},
		{StreakKing, "Streak King", "Maintain a 30-day habit streak", "🔥", 30},
		{EarlyBird, "Early Bird", "Complete habits before 9 AM for 5 days", "🌅", 5},
		{ConsistencyChampion, "Consistency Champion", "Use app for 30 consecutive days", "🏆", 30},
	}
}

// Evaluate computes progress for each definition, in definition order.
// Unknown IDs report zero progress.
func Evaluate(defs []Definition, ctx Context) []Evaluated {
	out := make([]Evaluated, 0, len(defs))
	for _, def := range defs {
		progress := Progress(def.ID, ctx)
		out = append(out, Evaluated{
			Definition: def,
			Progress:   progress,
			Unlocked:   progress >= def.Target,
		})
	}
	return out
}

// Progress applies the rule for a single badge.
func Progress(id ID, ctx Context) int {
	switch id {
	case FirstStep:
		// Only today's completions count; the badge relocks on a day with none.
		if engine.CompletedCount(ctx.Habits, ctx.Today) > 0 {
			return 1
		}
		return 0
	case HabitMaster:
		return len(ctx.Habits)
	case PerfectWeek:
		return engine.PerfectDayCount(ctx.Habits, ctx.Today, constants.WeekWindowDays)
	case HydrationHero:
		return engine.GoalAchievedDayCount(ctx.Hydration, ctx.HydrationGoalMl, ctx.Today, constants.WeekWindowDays)
	case MoodMaster:
		return len(ctx.Moods)
	case StreakKing:
		return engine.BestLongestStreak(ctx.Habits, ctx.Today, constants.LongestStreakWindowDays)
	case EarlyBird:
		// TODO: check completion time-of-day once completions carry a timestamp; until then this counts active days.
		return engine.ActiveDayCount(ctx.Habits, ctx.Today, constants.WeekWindowDays)
	case ConsistencyChampion:
		// Counts active days in the last 30, not a consecutive run.
		return engine.ActiveDayCount(ctx.Habits, ctx.Today, constants.MonthWindowDays)
	}
	return 0
}

// Summary is the headline for the achievements screen.
type Summary struct {
	Unlocked int `json:"unlocked"`
	Total    int `json:"total"`
	Percent  int `json:"percent"`
}

func Summarize(evaluated []Evaluated) Summary {
	s := Summary{Total: len(evaluated)}
	for _, e := range evaluated {
		if e.Unlocked {
			s.Unlocked++
		}
	}
	if s.Total > 0 {
		s.Percent = s.Unlocked * 100 / s.Total
	}
	return s
}
