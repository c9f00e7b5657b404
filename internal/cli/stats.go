package cli

import (
	"fmt"

	"github.com/julianstephens/brightwell/internal/achievements"
	"github.com/julianstephens/brightwell/internal/stats"
	"github.com/julianstephens/brightwell/internal/utils"
)

// snapshot reads every live record once.
func (c *Context) snapshot() (stats.Snapshot, int, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return stats.Snapshot{}, 0, fmt.Errorf("failed to load settings: %w", err)
	}
	habits, err := c.Store.GetAllHabits(false)
	if err != nil {
		return stats.Snapshot{}, 0, fmt.Errorf("failed to load habits: %w", err)
	}
	moods, err := c.Store.GetMoodEntries()
	if err != nil {
		return stats.Snapshot{}, 0, fmt.Errorf("failed to load moods: %w", err)
	}
	water, err := c.Store.GetHydrationEntries()
	if err != nil {
		return stats.Snapshot{}, 0, fmt.Errorf("failed to load hydration log: %w", err)
	}
	return stats.Snapshot{Habits: habits, Moods: moods, Hydration: water}, settings.HydrationGoalMl, nil
}

type StatsCmd struct {
	JSON bool `help:"Print the report as JSON."`
}

func (c *StatsCmd) Run(ctx *Context) error {
	snap, goal, err := ctx.snapshot()
	if err != nil {
		return err
	}
	r := stats.Build(snap, ctx.today(), ctx.Clock.Now(), goal)
	if c.JSON {
		return ctx.printJSON(r)
	}

	ctx.printf("Statistics for %s\n\n", utils.FormatDisplayDate(r.Today))
	ctx.println("Habits")
	ctx.printf("  Done today:         %d/%d\n", r.Habits.CompletedToday, r.Habits.Total)
	ctx.printf("  This week:          %d%%\n", r.Habits.WeeklyRate)
	ctx.printf("  This month:         %d%%\n", r.Habits.MonthlyRate)
	ctx.printf("  Perfect days (30d): %d\n", r.Habits.PerfectDays30)
	ctx.printf("  Current streak:     %d days\n", r.Habits.CurrentStreak)
	ctx.printf("  Longest streak:     %d days\n", r.Habits.LongestStreak)
	if r.Habits.BestDay != "" {
		ctx.printf("  Last perfect day:   %s\n", utils.FormatDisplayDate(r.Habits.BestDay))
	}

	ctx.println("\nMood")
	ctx.printf("  Entries:            %d (%d this week)\n", r.Mood.Total, r.Mood.ThisWeek)
	if r.Mood.MostCommon != "" {
		ctx.printf("  Most common:        %s\n", r.Mood.MostCommon)
	}

	ctx.println("\nHydration")
	ctx.printf("  Today:              %d / %d ml (%d%%)\n", r.Hydration.TodayMl, r.Hydration.GoalMl, r.Hydration.TodayPercent)
	ctx.printf("  7-day average:      %d ml\n", r.Hydration.WeeklyAverage)
	ctx.printf("  Goal days (7d):     %d\n", r.Hydration.GoalDaysInWeek)
	return nil
}

type AchievementsCmd struct {
	JSON bool `help:"Print the evaluation as JSON."`
}

func (c *AchievementsCmd) Run(ctx *Context) error {
	snap, goal, err := ctx.snapshot()
	if err != nil {
		return err
	}
	evaluated := achievements.Evaluate(achievements.Catalog(), achievements.Context{
		Habits:          snap.Habits,
		Moods:           snap.Moods,
		Hydration:       snap.Hydration,
		HydrationGoalMl: goal,
		Today:           ctx.today(),
	})
	if c.JSON {
		return ctx.printJSON(evaluated)
	}

	summary := achievements.Summarize(evaluated)
	ctx.printf("Achievements: %d/%d unlocked (%d%%)\n\n", summary.Unlocked, summary.Total, summary.Percent)
	for _, e := range evaluated {
		mark := "🔒"
		if e.Unlocked {
			mark = e.Icon
		}
		ctx.printf("%s %-22s %3d/%-3d %s\n", mark, e.Title, min(e.Progress, e.Target), e.Target, e.Description)
	}
	return nil
}
