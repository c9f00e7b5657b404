package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/utils"
)

const today = "2025-03-10"

func habit(id string, days ...string) models.Habit {
	return models.Habit{ID: id, Name: id, CompletionDates: models.NewDaySet(days...)}
}

// lastNDays returns today and the n-1 days before it.
func lastNDays(n int) []string {
	return utils.DaysBack(today, n)
}

func TestCurrentStreak(t *testing.T) {
	tests := []struct {
		name string
		days []string
		want int
	}{
		{"no completions", nil, 0},
		{"today only", []string{today}, 1},
		{"today and yesterday", []string{today, "2025-03-09"}, 2},
		{"gap two days back", []string{today, "2025-03-09", "2025-03-07"}, 2},
		{"yesterday only", []string{"2025-03-09", "2025-03-08", "2025-03-07"}, 0},
		{"across month boundary", []string{"2025-03-02", "2025-03-01", "2025-02-28"}, 0},
		{"long run", lastNDays(40), 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CurrentStreak(habit("h", tt.days...), today))
		})
	}
}

func TestCurrentStreakAcrossMonthBoundary(t *testing.T) {
	h := habit("h", "2025-03-01", "2025-02-28", "2025-02-27")
	assert.Equal(t, 3, CurrentStreak(h, "2025-03-01"))
}

func TestCurrentStreakIsTodayInclusive(t *testing.T) {
	// A long history ending yesterday still yields zero.
	days := utils.DaysBack(utils.ShiftDays(today, -1), 100)
	assert.Equal(t, 0, CurrentStreak(habit("h", days...), today))
}

func TestLongestStreak(t *testing.T) {
	h := habit("h",
		today,
		"2025-03-05", "2025-03-04", "2025-03-03", "2025-03-02",
		"2025-02-20", "2025-02-19",
	)

	assert.Equal(t, 4, LongestStreak(h, today, 365))
	assert.Equal(t, 1, LongestStreak(h, today, 5), "window ends before the four-day run")
	assert.Equal(t, 2, LongestStreak(h, today, 7), "run is clipped at the window boundary")
	assert.Equal(t, 0, LongestStreak(h, today, 0))
	assert.Equal(t, 0, LongestStreak(habit("empty"), today, 365))
}

func TestLongestStreakNegativeWindowPanics(t *testing.T) {
	assert.Panics(t, func() { LongestStreak(habit("h"), today, -1) })
}

func TestWeeklyCompletionRate(t *testing.T) {
	assert.Equal(t, 0, WeeklyCompletionRate(nil, today))
	assert.Equal(t, 0, WeeklyCompletionRate([]models.Habit{}, today))

	// 1 of 14 slots: floor(100/14) == 7
	habits := []models.Habit{habit("a", today), habit("b")}
	assert.Equal(t, 7, WeeklyCompletionRate(habits, today))

	full := []models.Habit{habit("a", lastNDays(7)...)}
	assert.Equal(t, 100, WeeklyCompletionRate(full, today))

	// Completions outside the window are ignored.
	old := []models.Habit{habit("a", "2025-03-03")}
	assert.Equal(t, 0, WeeklyCompletionRate(old, today))
}

func TestCompletionRateMonthly(t *testing.T) {
	habits := []models.Habit{habit("a", lastNDays(10)...)}
	// 10 of 30 slots
	assert.Equal(t, 33, CompletionRate(habits, today, 30))
	assert.Equal(t, 0, CompletionRate(habits, today, 0))
}

func TestPerfectDayCount(t *testing.T) {
	assert.Equal(t, 0, PerfectDayCount(nil, today, 7), "no habits is never perfect")

	single := []models.Habit{habit("a", lastNDays(7)...)}
	assert.Equal(t, 7, PerfectDayCount(single, today, 7))

	pair := []models.Habit{
		habit("a", lastNDays(7)...),
		habit("b", today, "2025-03-08"),
	}
	assert.Equal(t, 2, PerfectDayCount(pair, today, 7))
	assert.Equal(t, 1, PerfectDayCount(pair, today, 2))
}

func TestActiveDayCount(t *testing.T) {
	habits := []models.Habit{habit("a", today), habit("b", "2025-03-08", today)}
	assert.Equal(t, 2, ActiveDayCount(habits, today, 7))
	assert.Equal(t, 0, ActiveDayCount(nil, today, 7))
}

func TestBestDay(t *testing.T) {
	_, ok := BestDay(nil, today, 30)
	assert.False(t, ok)

	habits := []models.Habit{
		habit("a", "2025-03-08", "2025-03-01"),
		habit("b", "2025-03-08", "2025-03-01", today),
	}
	day, ok := BestDay(habits, today, 30)
	require.True(t, ok)
	assert.Equal(t, "2025-03-08", day)

	_, ok = BestDay(habits, today, 2)
	assert.False(t, ok)
}

func TestBestStreaksAcrossHabits(t *testing.T) {
	habits := []models.Habit{
		habit("a", today),
		habit("b", "2025-03-09", "2025-03-08", "2025-03-07"),
	}
	assert.Equal(t, 1, BestCurrentStreak(habits, today))
	assert.Equal(t, 3, BestLongestStreak(habits, today, 365))
	assert.Equal(t, 0, BestCurrentStreak(nil, today))
}

func TestCompletionSeries(t *testing.T) {
	habits := []models.Habit{habit("a", today, "2025-03-08"), habit("b", today)}
	series := CompletionSeries(habits, today, 3)

	require.Len(t, series, 3)
	assert.Equal(t, DayPoint{Day: "2025-03-08", Value: 1, Percent: 50}, series[0])
	assert.Equal(t, DayPoint{Day: "2025-03-09", Value: 0, Percent: 0}, series[1])
	assert.Equal(t, DayPoint{Day: today, Value: 2, Percent: 100}, series[2])

	assert.Empty(t, CompletionSeries(habits, today, 0))
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	h := habit("h", "2025-03-01", "2025-03-05")
	before := h.CompletionDates.Clone()

	for _, day := range []string{"2025-03-05", today} {
		h.ToggleCompletion(day)
		h.ToggleCompletion(day)
		assert.Equal(t, before, h.CompletionDates)
	}
}

func TestEngineDoesNotMutateInputs(t *testing.T) {
	habits := []models.Habit{habit("a", lastNDays(3)...), habit("b", today)}
	before := []models.DaySet{habits[0].CompletionDates.Clone(), habits[1].CompletionDates.Clone()}

	WeeklyCompletionRate(habits, today)
	PerfectDayCount(habits, today, 30)
	BestLongestStreak(habits, today, 365)
	CompletionSeries(habits, today, 7)

	assert.Equal(t, before[0], habits[0].CompletionDates)
	assert.Equal(t, before[1], habits[1].CompletionDates)
}

func TestNegativeWindowsPanic(t *testing.T) {
	habits := []models.Habit{habit("a")}
	assert.Panics(t, func() { CompletionRate(habits, today, -7) })
	assert.Panics(t, func() { PerfectDayCount(habits, today, -1) })
	assert.Panics(t, func() { ActiveDayCount(habits, today, -1) })
	assert.Panics(t, func() { GoalAchievedDayCount(nil, 2000, today, -1) })
	assert.Panics(t, func() { AverageDailyHydration(nil, today, -1) })
}
