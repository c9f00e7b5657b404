package cli

import (
	"fmt"

	"github.com/julianstephens/brightwell/internal/constants"
	"github.com/julianstephens/brightwell/internal/engine"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/validation"
)

type WaterCmd struct {
	Add    WaterAddCmd    `cmd:"" help:"Log a drink."`
	List   WaterListCmd   `cmd:"" help:"Show a day's drinks and progress."`
	Delete WaterDeleteCmd `cmd:"" help:"Delete a drink."`
}

type WaterAddCmd struct {
	Amount int `arg:"" optional:"" help:"Amount in ml (default: the first quick amount)."`
	Quick  int `help:"Use quick amount 1-4 (250, 500, 750, 1000 ml)." short:"q"`
}

func (c *WaterAddCmd) Run(ctx *Context) error {
	amount := c.Amount
	switch {
	case c.Quick != 0:
		if c.Quick < 1 || c.Quick > len(constants.QuickHydrationAmounts) {
			return fmt.Errorf("quick amount must be between 1 and %d", len(constants.QuickHydrationAmounts))
		}
		amount = constants.QuickHydrationAmounts[c.Quick-1]
	case amount == 0:
		amount = constants.QuickHydrationAmounts[0]
	}
	if err := validation.CheckHydrationAmount(amount); err != nil {
		return err
	}

	entry := models.NewHydrationEntry(amount, ctx.Clock.Now())
	if err := ctx.Store.AddHydrationEntry(entry); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetHydrationEntries()
	if err != nil {
		return err
	}
	total := engine.DailyHydrationTotal(entries, entry.Day)
	ctx.printf("+%d ml, %d / %d ml today (%d%%)\n", amount, total, settings.HydrationGoalMl, engine.GoalPercent(total, settings.HydrationGoalMl))
	return nil
}

type WaterListCmd struct {
	Date string `help:"Day to show: YYYY-MM-DD, today or yesterday." default:"today"`
}

func (c *WaterListCmd) Run(ctx *Context) error {
	day, err := ctx.parseDay(c.Date)
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	entries, err := ctx.Store.GetHydrationEntries()
	if err != nil {
		return err
	}

	onDay := engine.EntriesOn(entries, day)
	if len(onDay) == 0 {
		ctx.printf("No drinks logged on %s.\n", day)
	}
	for _, e := range onDay {
		ctx.printf("%s  %s  %5d ml\n", shortID(e.ID), e.Timestamp.In(ctx.Clock.Location()).Format(constants.DisplayTimeFormat), e.AmountMl)
	}

	total := engine.DailyHydrationTotal(entries, day)
	ctx.printf("Total: %d / %d ml (%d%%)\n", total, settings.HydrationGoalMl, engine.GoalPercent(total, settings.HydrationGoalMl))
	return nil
}

type WaterDeleteCmd struct {
	ID string `arg:"" help:"Entry id or unique id prefix."`
}

func (c *WaterDeleteCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.GetHydrationEntries()
	if err != nil {
		return err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	id, err := matchID(c.ID, ids)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteHydrationEntry(id); err != nil {
		return err
	}
	ctx.printf("Deleted drink %s\n", shortID(id))
	return nil
}
