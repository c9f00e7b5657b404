package constants

const (
	// Setting keys
	SettingHydrationGoalMl     = "hydration_goal_ml"
	SettingReminderIntervalMin = "reminder_interval_min"
	SettingRemindersEnabled    = "reminders_enabled"
	SettingTimezone            = "timezone"

	// Default Settings Values
	DefaultHydrationGoalMl     = 2000
	DefaultReminderIntervalMin = 120 // 2 hours
	DefaultRemindersEnabled    = true
	DefaultTimezone            = "Local" // Use system local timezone by default
)
