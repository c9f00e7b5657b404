package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/brightwell/internal/constants"
)

// Clock supplies the current instant. Everything that needs "today" takes a Clock
// so streak and goal logic can be exercised without the wall clock.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// SystemClock reads the wall clock and reports it in a fixed location.
type SystemClock struct {
	Loc *time.Location
}

// NewSystemClock returns a clock for the given IANA timezone name ("" or "Local" for the system zone).
func NewSystemClock(timezone string) (SystemClock, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return SystemClock{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return SystemClock{Loc: loc}, nil
}

func (c SystemClock) Now() time.Time {
	return time.Now().In(c.Location())
}

func (c SystemClock) Location() *time.Location {
	if c.Loc == nil {
		return time.Local
	}
	return c.Loc
}

// FixedClock always reports the same instant.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

func (c FixedClock) Location() *time.Location {
	return c.At.Location()
}

// TodayKey returns the day key (YYYY-MM-DD) for the clock's current local day.
func TodayKey(clock Clock) string {
	return clock.Now().Format(constants.DateFormat)
}

// ToKey returns the day key for an arbitrary instant in the given location.
// A nil location uses the instant's own location.
func ToKey(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(constants.DateFormat)
}

// ShiftDays returns the key n calendar days away from key (negative n walks into the past).
// Keys are calendar days, so the arithmetic is done in UTC where every day has 24 hours.
// It panics on a malformed key: callers are expected to pass keys produced by this package.
func ShiftDays(key string, n int) string {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		panic(fmt.Sprintf("utils.ShiftDays: invalid day key %q", key))
	}
	return t.AddDate(0, 0, n).Format(constants.DateFormat)
}

// DaysBack returns the n keys of the trailing window ending at today, newest first.
func DaysBack(today string, n int) []string {
	if n < 0 {
		panic(fmt.Sprintf("utils.DaysBack: negative window %d", n))
	}
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		keys = append(keys, ShiftDays(today, -i))
	}
	return keys
}

// ParseKey parses a day key into midnight of that day in loc.
func ParseKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", key)
	}
	if loc == nil {
		loc = time.Local
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ValidKey reports whether key is a well-formed, canonical day key.
func ValidKey(key string) bool {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return false
	}
	// time.Parse accepts some non-canonical forms; require a round trip.
	return t.Format(constants.DateFormat) == key
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// FormatDisplayDate renders a day key as "Jan 02, 2006"; malformed keys are returned unchanged.
func FormatDisplayDate(key string) string {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return key
	}
	return t.Format(constants.DisplayDateFormat)
}
