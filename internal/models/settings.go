package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/brightwell/internal/constants"
)

// Settings represents user preferences persisted alongside the records
type Settings struct {
	HydrationGoalMl     int    `json:"hydration_goal_ml"`     // daily water goal in milliliters
	ReminderIntervalMin int    `json:"reminder_interval_min"` // minutes between hydration reminders
	RemindersEnabled    bool   `json:"reminders_enabled"`     // whether hydration reminders fire at all
	Timezone            string `json:"timezone"`              // IANA timezone name, or "Local" for the system timezone
}

// DefaultSettings returns the settings a fresh store starts with.
func DefaultSettings() Settings {
	return Settings{
		HydrationGoalMl:     constants.DefaultHydrationGoalMl,
		ReminderIntervalMin: constants.DefaultReminderIntervalMin,
		RemindersEnabled:    constants.DefaultRemindersEnabled,
		Timezone:            constants.DefaultTimezone,
	}
}

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Missing keys keep their default values.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingHydrationGoalMl:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.HydrationGoalMl = n
		case constants.SettingReminderIntervalMin:
			n, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			settings.ReminderIntervalMin = n
		case constants.SettingRemindersEnabled:
			settings.RemindersEnabled = value == "true"
		case constants.SettingTimezone:
			settings.Timezone = value
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingHydrationGoalMl:     strconv.Itoa(settings.HydrationGoalMl),
		constants.SettingReminderIntervalMin: strconv.Itoa(settings.ReminderIntervalMin),
		constants.SettingRemindersEnabled:    strconv.FormatBool(settings.RemindersEnabled),
		constants.SettingTimezone:            settings.Timezone,
	}
}
