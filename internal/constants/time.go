package constants

const (
	// DateFormat is the canonical day key format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DisplayDateFormat is used when a day is shown to a person, e.g. "Jan 15, 2025"
	DisplayDateFormat = "Jan 02, 2006"

	// DisplayTimeFormat is the 12-hour clock format used for mood and hydration listings
	DisplayTimeFormat = "03:04 PM"
)
