package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/brightwell/internal/constants"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/mood"
	"github.com/julianstephens/brightwell/internal/utils"
)

// ConflictType identifies a kind of inconsistent record
type ConflictType string

const (
	ConflictBlankHabitName       ConflictType = "blank_habit_name"
	ConflictDuplicateHabitName   ConflictType = "duplicate_habit_name"
	ConflictInvalidCompletionKey ConflictType = "invalid_completion_key"
	ConflictHydrationDayMismatch ConflictType = "hydration_day_mismatch"
	ConflictHydrationAmount      ConflictType = "hydration_amount_out_of_range"
	ConflictEmptyMoodEmoji       ConflictType = "empty_mood_emoji"
	ConflictMoodCategoryMismatch ConflictType = "mood_category_mismatch"
	ConflictInvalidSetting       ConflictType = "invalid_setting"
)

// Conflict describes one problem found in the stored records
type Conflict struct {
	Type        ConflictType
	Description string
	ItemID      string // ID of the record involved, if any
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

func (vr *ValidationResult) add(t ConflictType, id, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{Type: t, ItemID: id, Description: fmt.Sprintf(format, args...)})
}

func (vr *ValidationResult) merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", c.Description)
	}
	return b.String()
}

// Validator checks stored records against the invariants the rest of the app assumes.
type Validator struct {
	// Location is the calendar hydration day keys are checked against.
	Location *time.Location
}

func New(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.Local
	}
	return &Validator{Location: loc}
}

// ValidateHabits reports blank names, live duplicates and malformed completion keys.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	var result ValidationResult
	seen := make(map[string]string)

	for _, h := range habits {
		name := strings.TrimSpace(h.Name)
		if name == "" {
			result.add(ConflictBlankHabitName, h.ID, "Habit %s has a blank name", h.ID)
		} else if h.DeletedAt == nil {
			key := strings.ToLower(name)
			if first, ok := seen[key]; ok {
				result.add(ConflictDuplicateHabitName, h.ID, "Duplicate habit name %q (also used by %s)", name, first)
			} else {
				seen[key] = h.ID
			}
		}

		for _, day := range h.CompletionDates.Sorted() {
			if !utils.ValidKey(day) {
				result.add(ConflictInvalidCompletionKey, h.ID, "Habit %q has an invalid completion date %q", h.Name, day)
			}
		}
	}
	return result
}

// ValidateMoods reports entries without an emoji and entries whose stored category
// disagrees with the current classification.
func (v *Validator) ValidateMoods(entries []models.MoodEntry) ValidationResult {
	var result ValidationResult
	for _, e := range entries {
		if strings.TrimSpace(e.Emoji) == "" {
			result.add(ConflictEmptyMoodEmoji, e.ID, "Mood entry %s has no emoji", e.ID)
			continue
		}
		if want := mood.CategoryFor(e.Emoji); string(want) != e.Category {
			result.add(ConflictMoodCategoryMismatch, e.ID, "Mood entry %s (%s) is tagged %q, expected %q", e.ID, e.Emoji, e.Category, want)
		}
	}
	return result
}

// ValidateHydration reports out-of-range amounts and day keys that do not match
// the timestamp's day in the validator's location.
func (v *Validator) ValidateHydration(entries []models.HydrationEntry) ValidationResult {
	var result ValidationResult
	for _, e := range entries {
		if e.AmountMl < constants.MinHydrationAmountMl || e.AmountMl > constants.MaxHydrationAmountMl {
			result.add(ConflictHydrationAmount, e.ID, "Hydration entry %s has amount %d ml (allowed %d-%d)",
				e.ID, e.AmountMl, constants.MinHydrationAmountMl, constants.MaxHydrationAmountMl)
		}
		if want := utils.ToKey(e.Timestamp, v.Location); e.Day != want {
			result.add(ConflictHydrationDayMismatch, e.ID, "Hydration entry %s is filed under %s but was logged on %s", e.ID, e.Day, want)
		}
	}
	return result
}

// ValidateSettings checks ranges and the timezone name.
func (v *Validator) ValidateSettings(s models.Settings) ValidationResult {
	var result ValidationResult
	if err := CheckHydrationGoal(s.HydrationGoalMl); err != nil {
		result.add(ConflictInvalidSetting, constants.SettingHydrationGoalMl, "%v", err)
	}
	if s.ReminderIntervalMin <= 0 {
		result.add(ConflictInvalidSetting, constants.SettingReminderIntervalMin, "Reminder interval must be positive, got %d", s.ReminderIntervalMin)
	}
	if !utils.ValidateTimezone(s.Timezone) {
		result.add(ConflictInvalidSetting, constants.SettingTimezone, "Unknown timezone %q", s.Timezone)
	}
	return result
}

// ValidateAll runs every check.
func (v *Validator) ValidateAll(habits []models.Habit, moods []models.MoodEntry, water []models.HydrationEntry, settings models.Settings) ValidationResult {
	var result ValidationResult
	result.merge(v.ValidateHabits(habits))
	result.merge(v.ValidateMoods(moods))
	result.merge(v.ValidateHydration(water))
	result.merge(v.ValidateSettings(settings))
	return result
}

// CheckHydrationAmount rejects amounts outside the loggable range.
func CheckHydrationAmount(ml int) error {
	if ml < constants.MinHydrationAmountMl || ml > constants.MaxHydrationAmountMl {
		return fmt.Errorf("amount must be between %d and %d ml, got %d", constants.MinHydrationAmountMl, constants.MaxHydrationAmountMl, ml)
	}
	return nil
}

// CheckHydrationGoal rejects goals outside the configurable range.
func CheckHydrationGoal(ml int) error {
	if ml < constants.MinHydrationGoalMl || ml > constants.MaxHydrationGoalMl {
		return fmt.Errorf("hydration goal must be between %d and %d ml, got %d", constants.MinHydrationGoalMl, constants.MaxHydrationGoalMl, ml)
	}
	return nil
}

// CheckHabitName rejects blank names.
func CheckHabitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	return nil
}
