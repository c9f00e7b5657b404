package achievements

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/utils"
)

const today = "2025-06-30"

func habitWith(id string, days ...string) models.Habit {
	return models.Habit{ID: id, Name: id, CompletionDates: models.NewDaySet(days...)}
}

func byID(t *testing.T, evaluated []Evaluated, id ID) Evaluated {
	t.Helper()
	for _, e := range evaluated {
		if e.ID == id {
			return e
		}
	}
	t.Fatalf("achievement %s not evaluated", id)
	return Evaluated{}
}

func TestCatalog(t *testing.T) {
	want := map[ID]int{
		FirstStep:           1,
		HabitMaster:         10,
		PerfectWeek:         7,
		HydrationHero:       7,
		MoodMaster:          30,
		StreakKing:          30,
		EarlyBird:           5,
		ConsistencyChampion: 30,
	}
	catalog := Catalog()
	require.Len(t, catalog, len(want))
	for _, def := range catalog {
		assert.Equal(t, want[def.ID], def.Target, def.ID)
		assert.NotEmpty(t, def.Title)
		assert.NotEmpty(t, def.Icon)
	}
}

func TestEvaluateEmptySnapshot(t *testing.T) {
	evaluated := Evaluate(Catalog(), Context{Today: today, HydrationGoalMl: 2000})
	require.Len(t, evaluated, 8)
	for _, e := range evaluated {
		assert.Zero(t, e.Progress, e.ID)
		assert.False(t, e.Unlocked, e.ID)
	}
	assert.Equal(t, Summary{Unlocked: 0, Total: 8, Percent: 0}, Summarize(evaluated))
}

func TestEvaluateRules(t *testing.T) {
	month := utils.DaysBack(today, 30)
	habits := []models.Habit{
		habitWith("daily", month...),
		habitWith("weekly", month[:7]...),
		habitWith("once", "2025-01-01"),
	}

	var moods []models.MoodEntry
	for i := 0; i < 30; i++ {
		moods = append(moods, models.MoodEntry{ID: string(rune('a' + i)), Emoji: "😊"})
	}

	var water []models.HydrationEntry
	for _, day := range utils.DaysBack(today, 5) {
		water = append(water, models.HydrationEntry{AmountMl: 2000, Day: day})
	}

	evaluated := Evaluate(Catalog(), Context{
		Habits:          habits,
		Moods:           moods,
		Hydration:       water,
		HydrationGoalMl: 2000,
		Today:           today,
	})

	tests := []struct {
		id       ID
		progress int
		unlocked bool
	}{
		{FirstStep, 1, true},
		{HabitMaster, 3, false},
		{PerfectWeek, 0, false}, // "once" is not done this week
		{HydrationHero, 5, false},
		{MoodMaster, 30, true},
		{StreakKing, 30, true},
		{EarlyBird, 7, true},
		{ConsistencyChampion, 30, true},
	}
	for _, tt := range tests {
		e := byID(t, evaluated, tt.id)
		assert.Equal(t, tt.progress, e.Progress, tt.id)
		assert.Equal(t, tt.unlocked, e.Unlocked, tt.id)
	}

	assert.Equal(t, Summary{Unlocked: 5, Total: 8, Percent: 62}, Summarize(evaluated))
}

func TestPerfectWeekUnlocks(t *testing.T) {
	week := utils.DaysBack(today, 7)
	ctx := Context{
		Habits: []models.Habit{habitWith("a", week...), habitWith("b", week...)},
		Today:  today,
	}
	e := Evaluate([]Definition{Catalog()[2]}, ctx)
	require.Len(t, e, 1)
	assert.Equal(t, PerfectWeek, e[0].ID)
	assert.Equal(t, 7, e[0].Progress)
	assert.True(t, e[0].Unlocked)
}

func TestFirstStepNeedsCompletionToday(t *testing.T) {
	past := Context{Habits: []models.Habit{habitWith("a", "2025-01-01", utils.ShiftDays(today, -1))}, Today: today}
	assert.Equal(t, 0, Progress(FirstStep, past))

	current := Context{Habits: []models.Habit{habitWith("a", "2025-01-01"), habitWith("b", today)}, Today: today}
	assert.Equal(t, 1, Progress(FirstStep, current))
}

func TestUncompletingRelocksBadge(t *testing.T) {
	h := habitWith("a", today)
	ctx := Context{Habits: []models.Habit{h}, Today: today}
	assert.True(t, Evaluate(Catalog()[:1], ctx)[0].Unlocked)

	h.ToggleCompletion(today)
	ctx.Habits = []models.Habit{h}
	assert.False(t, Evaluate(Catalog()[:1], ctx)[0].Unlocked)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	ctx := Context{
		Habits: []models.Habit{habitWith("a", utils.DaysBack(today, 12)...), habitWith("b", today)},
		Moods: []models.MoodEntry{
			{ID: "m1", Emoji: "😊", Timestamp: time.Date(2025, 6, 30, 8, 0, 0, 0, time.UTC)},
		},
		Hydration:       []models.HydrationEntry{{ID: "w1", AmountMl: 2500, Day: today}},
		HydrationGoalMl: 2000,
		Today:           today,
	}

	first, err := json.Marshal(Evaluate(Catalog(), ctx))
	require.NoError(t, err)
	second, err := json.Marshal(Evaluate(Catalog(), ctx))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestUnknownDefinition(t *testing.T) {
	e := Evaluate([]Definition{{ID: "mystery", Target: 1}}, Context{Today: today})
	require.Len(t, e, 1)
	assert.Zero(t, e[0].Progress)
	assert.False(t, e[0].Unlocked)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 50, Evaluated{Definition: Definition{Target: 10}, Progress: 5}.Percent())
	assert.Equal(t, 100, Evaluated{Definition: Definition{Target: 10}, Progress: 25}.Percent())
}
