package cli

import (
	"fmt"

	"github.com/julianstephens/brightwell/internal/utils"
	"github.com/julianstephens/brightwell/internal/validation"
)

type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change settings."`
}

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	ctx.println("Current Settings:")
	ctx.printf("  Hydration Goal:     %d ml\n", settings.HydrationGoalMl)
	ctx.printf("  Reminders Enabled:  %v\n", settings.RemindersEnabled)
	ctx.printf("  Reminder Interval:  %d min\n", settings.ReminderIntervalMin)
	ctx.printf("  Timezone:           %s\n", settings.Timezone)
	ctx.printf("\nStore: %s\n", ctx.Store.GetConfigPath())
	return nil
}

type SettingsSetCmd struct {
	Goal      *int    `help:"Daily hydration goal in ml (500-10000)."`
	Interval  *int    `help:"Minutes between hydration reminders."`
	Reminders *bool   `help:"Enable or disable hydration reminders (--reminders=false to disable)."`
	Timezone  *string `help:"IANA timezone, or Local for the system zone."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	updated := false
	if c.Goal != nil {
		if err := validation.CheckHydrationGoal(*c.Goal); err != nil {
			return err
		}
		settings.HydrationGoalMl = *c.Goal
		updated = true
	}
	if c.Interval != nil {
		if *c.Interval <= 0 {
			return fmt.Errorf("reminder interval must be positive")
		}
		settings.ReminderIntervalMin = *c.Interval
		updated = true
	}
	if c.Reminders != nil {
		settings.RemindersEnabled = *c.Reminders
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}

	if !updated {
		ctx.println("No changes specified. Use 'settings show' to view settings or flags to update them.")
		return nil
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.println("Settings updated successfully.")
	return nil
}
