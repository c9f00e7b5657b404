package engine

import (
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/utils"
)

// DailyHydrationTotal sums the amounts of the entries recorded on day.
func DailyHydrationTotal(entries []models.HydrationEntry, day string) int {
	total := 0
	for _, e := range entries {
		if e.Day == day {
			total += e.AmountMl
		}
	}
	return total
}

func totalsByDay(entries []models.HydrationEntry) map[string]int {
	totals := make(map[string]int)
	for _, e := range entries {
		totals[e.Day] += e.AmountMl
	}
	return totals
}

// GoalAchievedDayCount counts days in the window whose total reached goal.
func GoalAchievedDayCount(entries []models.HydrationEntry, goal int, today string, windowDays int) int {
	checkWindow("GoalAchievedDayCount", windowDays)

	totals := totalsByDay(entries)
	met := 0
	day := today
	for i := 0; i < windowDays; i++ {
		if totals[day] >= goal {
			met++
		}
		day = utils.ShiftDays(day, -1)
	}
	return met
}

// AverageDailyHydration is the integer mean of the daily totals over the window,
// counting days with no entries as zero.
func AverageDailyHydration(entries []models.HydrationEntry, today string, windowDays int) int {
	checkWindow("AverageDailyHydration", windowDays)
	if windowDays == 0 {
		return 0
	}

	totals := totalsByDay(entries)
	sum := 0
	day := today
	for i := 0; i < windowDays; i++ {
		sum += totals[day]
		day = utils.ShiftDays(day, -1)
	}
	return sum / windowDays
}

// GoalPercent is total as a percentage of goal, capped at 100.
func GoalPercent(total, goal int) int {
	if goal <= 0 {
		return 0
	}
	p := total * 100 / goal
	if p > 100 {
		return 100
	}
	return p
}

// HydrationSeries returns daily totals for the window, oldest first.
// Percent is the share of goal reached, capped at 100.
func HydrationSeries(entries []models.HydrationEntry, goal int, today string, windowDays int) []DayPoint {
	checkWindow("HydrationSeries", windowDays)

	totals := totalsByDay(entries)
	points := make([]DayPoint, windowDays)
	day := today
	for i := windowDays - 1; i >= 0; i-- {
		points[i] = DayPoint{Day: day, Value: totals[day], Percent: GoalPercent(totals[day], goal)}
		day = utils.ShiftDays(day, -1)
	}
	return points
}

// EntriesOn filters entries to one day, preserving order.
func EntriesOn(entries []models.HydrationEntry, day string) []models.HydrationEntry {
	var out []models.HydrationEntry
	for _, e := range entries {
		if e.Day == day {
			out = append(out, e)
		}
	}
	return out
}
