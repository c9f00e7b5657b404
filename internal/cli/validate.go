package cli

import (
	"fmt"

	"github.com/julianstephens/brightwell/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	result, err := ctx.validate()
	if err != nil {
		return err
	}
	ctx.println()
	ctx.println(result.FormatReport())
	return nil
}

// validate checks every stored record, including deleted habits.
func (c *Context) validate() (validation.ValidationResult, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load settings: %w", err)
	}
	habits, err := c.Store.GetAllHabits(true)
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load habits: %w", err)
	}
	moods, err := c.Store.GetMoodEntries()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load moods: %w", err)
	}
	water, err := c.Store.GetHydrationEntries()
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to load hydration log: %w", err)
	}

	c.println("Validating habits, moods, hydration and settings...")
	return validation.New(c.Clock.Location()).ValidateAll(habits, moods, water, settings), nil
}
