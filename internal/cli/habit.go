package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/brightwell/internal/constants"
	"github.com/julianstephens/brightwell/internal/engine"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/storage"
	"github.com/julianstephens/brightwell/internal/utils"
	"github.com/julianstephens/brightwell/internal/validation"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits with today's status and streaks."`
	Toggle  HabitToggleCmd  `cmd:"" help:"Mark a habit done (or not done) for a day."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit (soft delete)."`
	Restore HabitRestoreCmd `cmd:"" help:"Restore a deleted habit."`
	Log     HabitLogCmd     `cmd:"" help:"Show habit history as a grid."`
}

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Description string `help:"Optional description." short:"d"`
	Icon        string `help:"Optional emoji icon."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := validation.CheckHabitName(c.Name); err != nil {
		return err
	}

	habit := models.NewHabit(c.Name, c.Description, c.Icon, ctx.Clock.Now())
	if err := ctx.Store.AddHabit(habit); err != nil {
		if errors.Is(err, storage.ErrDuplicateName) {
			return fmt.Errorf("habit with name %q already exists", habit.Name)
		}
		return err
	}

	ctx.printf("Added habit: %s\n", habit.Name)
	return nil
}

type HabitListCmd struct {
	Deleted bool `help:"Include deleted habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits(c.Deleted)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		ctx.println("No habits found.")
		return nil
	}

	today := ctx.today()
	for _, h := range habits {
		mark := "[ ]"
		if h.IsCompletedOn(today) {
			mark = "[x]"
		}
		name := h.Name
		if h.Icon != "" {
			name = h.Icon + " " + name
		}
		if h.DeletedAt != nil {
			ctx.printf("    %s [DELETED]\n", name)
			continue
		}
		ctx.printf("%s %s  (streak %d, best %d)\n", mark, name,
			engine.CurrentStreak(h, today),
			engine.LongestStreak(h, today, constants.LongestStreakWindowDays))
	}

	ctx.printf("\n%d/%d done today\n", engine.CompletedCount(liveHabits(habits), today), len(liveHabits(habits)))
	return nil
}

func liveHabits(habits []models.Habit) []models.Habit {
	live := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if h.DeletedAt == nil {
			live = append(live, h)
		}
	}
	return live
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name or id."`
	Date string `help:"Day to toggle: YYYY-MM-DD, today or yesterday." default:"today"`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	day, err := ctx.parseDay(c.Date)
	if err != nil {
		return err
	}
	if day > ctx.today() {
		return fmt.Errorf("cannot mark %s: it is in the future", day)
	}

	habit, err := findHabit(ctx.Store, c.Name)
	if err != nil {
		return err
	}
	done, err := ctx.Store.ToggleHabitCompletion(habit.ID, day)
	if err != nil {
		return err
	}

	if done {
		habit.CompletionDates = habit.CompletionDates.Clone()
		habit.ToggleCompletion(day)
		ctx.printf("✓ %s done for %s (streak %d)\n", habit.Name, day, engine.CurrentStreak(habit, ctx.today()))
	} else {
		ctx.printf("○ %s not done for %s\n", habit.Name, day)
	}
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name or id."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	habit, err := findHabit(ctx.Store, c.Name)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	ctx.printf("Deleted habit: %s\n", habit.Name)
	ctx.println("Use 'brightwell habit restore' to undo.")
	return nil
}

type HabitRestoreCmd struct {
	Name string `arg:"" help:"Name or id of the deleted habit."`
}

func (c *HabitRestoreCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits(true)
	if err != nil {
		return err
	}

	var target *models.Habit
	for i, h := range habits {
		if h.DeletedAt == nil {
			continue
		}
		if h.ID == strings.TrimSpace(c.Name) || strings.EqualFold(strings.TrimSpace(h.Name), strings.TrimSpace(c.Name)) {
			target = &habits[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no deleted habit named %q", c.Name)
	}

	if err := ctx.Store.RestoreHabit(target.ID); err != nil {
		if errors.Is(err, storage.ErrDuplicateName) {
			return fmt.Errorf("cannot restore %q: a habit with that name already exists", target.Name)
		}
		return err
	}
	ctx.printf("Restored habit: %s\n", target.Name)
	return nil
}

type HabitLogCmd struct {
	Days int    `help:"Number of days to show." default:"14"`
	Name string `arg:"" optional:"" help:"Only show this habit."`
}

func (c *HabitLogCmd) Run(ctx *Context) error {
	if c.Days <= 0 {
		return fmt.Errorf("days must be positive")
	}

	habits, err := ctx.Store.GetAllHabits(false)
	if err != nil {
		return err
	}
	if c.Name != "" {
		h, err := findHabit(ctx.Store, c.Name)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	}
	if len(habits) == 0 {
		ctx.println("No habits found.")
		return nil
	}

	today := ctx.today()
	days := utils.DaysBack(today, c.Days)

	width := 0
	for _, h := range habits {
		width = max(width, len([]rune(h.Name)))
	}

	ctx.printf("%-*s  %s .. %s\n", width, "", days[len(days)-1], today)
	for _, h := range habits {
		var b strings.Builder
		for i := len(days) - 1; i >= 0; i-- {
			if h.IsCompletedOn(days[i]) {
				b.WriteString("■")
			} else {
				b.WriteString("·")
			}
		}
		ctx.printf("%-*s  %s\n", width, h.Name, b.String())
	}
	return nil
}
