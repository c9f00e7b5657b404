// Package engine derives streaks, completion rates and daily aggregates from
// habit, mood and hydration records.
//
// Every function is pure: it reads the slices it is given, never mutates them,
// and never consults the wall clock. "today" is always a day key supplied by
// the caller, and every window walks backward from it, including today.
// A negative window is a programming error and panics.
package engine

import (
	"fmt"

	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/utils"
)

func checkWindow(fn string, windowDays int) {
	if windowDays < 0 {
		panic(fmt.Sprintf("engine.%s: negative window %d", fn, windowDays))
	}
}

// CurrentStreak counts consecutive completed days ending at today.
// It is 0 when today itself is not completed, whatever the earlier history.
func CurrentStreak(h models.Habit, today string) int {
	streak := 0
	for day := today; h.CompletionDates.Has(day); day = utils.ShiftDays(day, -1) {
		streak++
	}
	return streak
}

// LongestStreak returns the longest run of consecutive completed days inside
// the trailing window of windowDays days ending at today.
func LongestStreak(h models.Habit, today string, windowDays int) int {
	checkWindow("LongestStreak", windowDays)

	longest, run := 0, 0
	day := today
	for i := 0; i < windowDays; i++ {
		if h.CompletionDates.Has(day) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
		day = utils.ShiftDays(day, -1)
	}
	return longest
}

// CompletedCount returns how many of the habits were completed on day.
func CompletedCount(habits []models.Habit, day string) int {
	n := 0
	for _, h := range habits {
		if h.CompletionDates.Has(day) {
			n++
		}
	}
	return n
}

// CompletionRate is the integer percentage of habit-day slots completed over
// the trailing window. The division truncates; no habits or an empty window yields 0.
func CompletionRate(habits []models.Habit, today string, windowDays int) int {
	checkWindow("CompletionRate", windowDays)
	slots := len(habits) * windowDays
	if slots == 0 {
		return 0
	}

	completed := 0
	day := today
	for i := 0; i < windowDays; i++ {
		completed += CompletedCount(habits, day)
		day = utils.ShiftDays(day, -1)
	}
	return completed * 100 / slots
}

// WeeklyCompletionRate is CompletionRate over the trailing 7 days.
func WeeklyCompletionRate(habits []models.Habit, today string) int {
	return CompletionRate(habits, today, 7)
}

// PerfectDayCount counts days in the window on which every habit was completed.
// With no habits there are no perfect days.
func PerfectDayCount(habits []models.Habit, today string, windowDays int) int {
	checkWindow("PerfectDayCount", windowDays)
	if len(habits) == 0 {
		return 0
	}

	perfect := 0
	day := today
	for i := 0; i < windowDays; i++ {
		if CompletedCount(habits, day) == len(habits) {
			perfect++
		}
		day = utils.ShiftDays(day, -1)
	}
	return perfect
}

// ActiveDayCount counts days in the window on which at least one habit was completed.
func ActiveDayCount(habits []models.Habit, today string, windowDays int) int {
	checkWindow("ActiveDayCount", windowDays)

	active := 0
	day := today
	for i := 0; i < windowDays; i++ {
		if CompletedCount(habits, day) > 0 {
			active++
		}
		day = utils.ShiftDays(day, -1)
	}
	return active
}

// BestDay returns the most recent perfect day in the window, if any.
func BestDay(habits []models.Habit, today string, windowDays int) (string, bool) {
	checkWindow("BestDay", windowDays)
	if len(habits) == 0 {
		return "", false
	}

	day := today
	for i := 0; i < windowDays; i++ {
		if CompletedCount(habits, day) == len(habits) {
			return day, true
		}
		day = utils.ShiftDays(day, -1)
	}
	return "", false
}

// BestCurrentStreak and BestLongestStreak report the highest streak across habits.
func BestCurrentStreak(habits []models.Habit, today string) int {
	best := 0
	for _, h := range habits {
		if s := CurrentStreak(h, today); s > best {
			best = s
		}
	}
	return best
}

func BestLongestStreak(habits []models.Habit, today string, windowDays int) int {
	checkWindow("BestLongestStreak", windowDays)
	best := 0
	for _, h := range habits {
		if s := LongestStreak(h, today, windowDays); s > best {
			best = s
		}
	}
	return best
}

// DayPoint is one day of a chart series.
type DayPoint struct {
	Day     string `json:"day"`
	Value   int    `json:"value"`
	Percent int    `json:"percent"`
}

// CompletionSeries returns per-day completion counts for the window, oldest first.
// Percent is the share of habits completed that day.
func CompletionSeries(habits []models.Habit, today string, windowDays int) []DayPoint {
	checkWindow("CompletionSeries", windowDays)

	points := make([]DayPoint, windowDays)
	day := today
	for i := windowDays - 1; i >= 0; i-- {
		done := CompletedCount(habits, day)
		p := DayPoint{Day: day, Value: done}
		if len(habits) > 0 {
			p.Percent = done * 100 / len(habits)
		}
		points[i] = p
		day = utils.ShiftDays(day, -1)
	}
	return points
}
