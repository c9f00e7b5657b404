// Package stats assembles the statistics report shown by the CLI, the dashboard and exports.
package stats

import (
	"time"

	"github.com/julianstephens/brightwell/internal/constants"
	"github.com/julianstephens/brightwell/internal/engine"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/mood"
)

// Snapshot is the record set a report is built from.
type Snapshot struct {
	Habits    []models.Habit
	Moods     []models.MoodEntry // newest first
	Hydration []models.HydrationEntry
}

type HabitStats struct {
	Total          int    `json:"total"`
	CompletedToday int    `json:"completed_today"`
	WeeklyRate     int    `json:"weekly_rate"`
	MonthlyRate    int    `json:"monthly_rate"`
	PerfectDays30  int    `json:"perfect_days_30"`
	BestDay        string `json:"best_day,omitempty"`
	CurrentStreak  int    `json:"current_streak"`
	LongestStreak  int    `json:"longest_streak"`
	// PerHabit lists each habit's streaks in store order.
	PerHabit []HabitStreak `json:"per_habit"`
}

type HabitStreak struct {
	Name          string `json:"name"`
	Icon          string `json:"icon,omitempty"`
	DoneToday     bool   `json:"done_today"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

type MoodStats struct {
	Total      int                   `json:"total"`
	MostCommon string                `json:"most_common,omitempty"`
	ThisWeek   int                   `json:"this_week"`
	Emoji      []engine.EmojiCount   `json:"emoji"`
	Categories map[mood.Category]int `json:"categories"`
}

type HydrationStats struct {
	TodayMl        int `json:"today_ml"`
	GoalMl         int `json:"goal_ml"`
	TodayPercent   int `json:"today_percent"`
	WeeklyAverage  int `json:"weekly_average_ml"`
	GoalDaysInWeek int `json:"goal_days_in_week"`
}

type Report struct {
	Today     string            `json:"today"`
	Habits    HabitStats        `json:"habits"`
	Mood      MoodStats         `json:"mood"`
	Hydration HydrationStats    `json:"hydration"`
	Week      []engine.DayPoint `json:"week"`
	WeekWater []engine.DayPoint `json:"week_water"`
}

// Build computes the report for today. now anchors the "this week" mood count,
// which, like the rest of the journal, works on instants rather than day keys.
func Build(snap Snapshot, today string, now time.Time, goalMl int) Report {
	r := Report{Today: today}

	r.Habits = HabitStats{
		Total:          len(snap.Habits),
		CompletedToday: engine.CompletedCount(snap.Habits, today),
		WeeklyRate:     engine.WeeklyCompletionRate(snap.Habits, today),
		MonthlyRate:    engine.CompletionRate(snap.Habits, today, constants.MonthWindowDays),
		PerfectDays30:  engine.PerfectDayCount(snap.Habits, today, constants.MonthWindowDays),
		CurrentStreak:  engine.BestCurrentStreak(snap.Habits, today),
		LongestStreak:  engine.BestLongestStreak(snap.Habits, today, constants.LongestStreakWindowDays),
		PerHabit:       make([]HabitStreak, 0, len(snap.Habits)),
	}
	if day, ok := engine.BestDay(snap.Habits, today, constants.MonthWindowDays); ok {
		r.Habits.BestDay = day
	}
	for _, h := range snap.Habits {
		r.Habits.PerHabit = append(r.Habits.PerHabit, HabitStreak{
			Name:          h.Name,
			Icon:          h.Icon,
			DoneToday:     h.IsCompletedOn(today),
			CurrentStreak: engine.CurrentStreak(h, today),
			LongestStreak: engine.LongestStreak(h, today, constants.LongestStreakWindowDays),
		})
	}

	r.Mood = MoodStats{
		Total:      len(snap.Moods),
		ThisWeek:   engine.MoodCountSince(snap.Moods, now.Add(-constants.WeekWindowDays*24*time.Hour)),
		Emoji:      engine.MoodDistribution(snap.Moods),
		Categories: make(map[mood.Category]int),
	}
	if most, ok := engine.MostCommonMood(snap.Moods); ok {
		r.Mood.MostCommon = most
	}
	for category, n := range engine.CategoryCounts(snap.Moods) {
		r.Mood.Categories[mood.Category(category)] = n
	}

	todayMl := engine.DailyHydrationTotal(snap.Hydration, today)
	r.Hydration = HydrationStats{
		TodayMl:        todayMl,
		GoalMl:         goalMl,
		TodayPercent:   engine.GoalPercent(todayMl, goalMl),
		WeeklyAverage:  engine.AverageDailyHydration(snap.Hydration, today, constants.WeekWindowDays),
		GoalDaysInWeek: engine.GoalAchievedDayCount(snap.Hydration, goalMl, today, constants.WeekWindowDays),
	}

	r.Week = engine.CompletionSeries(snap.Habits, today, constants.WeekWindowDays)
	r.WeekWater = engine.HydrationSeries(snap.Hydration, goalMl, today, constants.WeekWindowDays)
	return r
}
