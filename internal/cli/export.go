package cli

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/brightwell/internal/export"
)

type ExportCmd struct {
	Dir string `help:"Directory to write the CSV files to." type:"path" default:"."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return fmt.Errorf("failed to load habits: %w", err)
	}
	moods, err := ctx.Store.GetMoodEntries()
	if err != nil {
		return fmt.Errorf("failed to load moods: %w", err)
	}
	water, err := ctx.Store.GetHydrationEntries()
	if err != nil {
		return fmt.Errorf("failed to load hydration log: %w", err)
	}

	paths, err := export.WriteDir(c.Dir, export.Snapshot{Habits: habits, Moods: moods, Hydration: water}, ctx.Clock.Location())
	if err != nil {
		return err
	}
	for _, p := range paths {
		ctx.printf("✓ Wrote %s\n", filepath.Clean(p))
	}
	return nil
}
