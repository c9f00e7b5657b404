package constants

const (
	// Trailing windows, in days, used by the statistics screens
	WeekWindowDays          = 7
	MonthWindowDays         = 30
	LongestStreakWindowDays = 365

	// Hydration limits
	MinHydrationAmountMl = 1
	MaxHydrationAmountMl = 5000
	MinHydrationGoalMl   = 500
	MaxHydrationGoalMl   = 10000

	// Mood summary
	MoodSummaryRecentCount = 5
)

// QuickHydrationAmounts are the one-tap amounts offered by the dashboard and `water add`.
var QuickHydrationAmounts = []int{250, 500, 750, 1000}
