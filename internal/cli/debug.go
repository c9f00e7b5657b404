package cli

import (
	"fmt"

	"github.com/julianstephens/brightwell/internal/engine"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/utils"
)

type DebugCmd struct {
	DBPath    DebugDBPathCmd    `cmd:"" help:"Show store path."`
	DumpHabit DebugDumpHabitCmd `cmd:"" help:"Dump habit data as JSON."`
	DumpDay   DebugDumpDayCmd   `cmd:"" help:"Dump every record for a day as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	return ctx.printJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpHabitCmd struct {
	Name string `arg:"" help:"Name or id of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *Context) error {
	habit, err := findHabit(ctx.Store, cmd.Name)
	if err != nil {
		return err
	}
	return ctx.printJSON(habit)
}

type DebugDumpDayCmd struct {
	Date string `arg:"" help:"Day to dump (YYYY-MM-DD, today or yesterday)."`
}

type dayDump struct {
	Day       string                  `json:"day"`
	Completed []string                `json:"completed"`
	Moods     []models.MoodEntry      `json:"moods"`
	Hydration []models.HydrationEntry `json:"hydration"`
}

func (cmd *DebugDumpDayCmd) Run(ctx *Context) error {
	day, err := ctx.parseDay(cmd.Date)
	if err != nil {
		return err
	}
	snap, _, err := ctx.snapshot()
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	dump := dayDump{
		Day:       day,
		Completed: []string{},
		Moods:     []models.MoodEntry{},
		Hydration: engine.EntriesOn(snap.Hydration, day),
	}
	for _, h := range snap.Habits {
		if h.IsCompletedOn(day) {
			dump.Completed = append(dump.Completed, h.Name)
		}
	}

	for _, m := range snap.Moods {
		if utils.ToKey(m.Timestamp, ctx.Clock.Location()) == day {
			dump.Moods = append(dump.Moods, m)
		}
	}
	return ctx.printJSON(dump)
}
