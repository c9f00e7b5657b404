package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/brightwell/internal/constants"
	"github.com/julianstephens/brightwell/internal/engine"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/mood"
)

type MoodCmd struct {
	Add     MoodAddCmd     `cmd:"" help:"Log a mood."`
	List    MoodListCmd    `cmd:"" help:"List mood entries, newest first."`
	Delete  MoodDeleteCmd  `cmd:"" help:"Delete a mood entry."`
	Summary MoodSummaryCmd `cmd:"" help:"Print a shareable mood summary."`
	Emojis  MoodEmojisCmd  `cmd:"" help:"List the mood emoji and their categories."`
}

type MoodAddCmd struct {
	Emoji string `arg:"" help:"Mood emoji."`
	Note  string `help:"Optional note." short:"n"`
}

func (c *MoodAddCmd) Run(ctx *Context) error {
	if strings.TrimSpace(c.Emoji) == "" {
		return fmt.Errorf("emoji cannot be empty")
	}

	entry := models.NewMoodEntry(c.Emoji, c.Note, ctx.Clock.Now())
	if err := ctx.Store.AddMoodEntry(entry); err != nil {
		return err
	}

	if !mood.Known(entry.Emoji) {
		ctx.printf("Note: %s is not a known mood emoji, filed as neutral.\n", entry.Emoji)
	}
	ctx.printf("Logged %s (%s)\n", entry.Emoji, mood.Category(entry.Category).Label())
	return nil
}

type MoodListCmd struct {
	Limit int `help:"Maximum entries to show (0 for all)." default:"20"`
}

func (c *MoodListCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.GetMoodEntries()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		ctx.println("No mood entries yet.")
		return nil
	}

	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}
	for _, e := range entries {
		ctx.printf("%s  %s  %s  %-9s %s\n", shortID(e.ID), ctx.localTime(e.Timestamp), e.Emoji, mood.Category(e.Category).Label(), e.Note)
	}
	return nil
}

type MoodDeleteCmd struct {
	ID string `arg:"" help:"Entry id or unique id prefix."`
}

func (c *MoodDeleteCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.GetMoodEntries()
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
	if err := ctx.Store.DeleteMoodEntry(id); err != nil {
		return err
	}
	ctx.printf("Deleted mood entry %s\n", shortID(id))
	return nil
}

type MoodSummaryCmd struct{}

func (c *MoodSummaryCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.GetMoodEntries()
	if err != nil {
		return err
	}
	ctx.printf("%s", moodSummary(ctx, entries))
	return nil
}

// moodSummary is the share text: totals, the dominant mood and the most recent entries.
func moodSummary(ctx *Context, entries []models.MoodEntry) string {
	var b strings.Builder
	b.WriteString("My mood journal\n")
	fmt.Fprintf(&b, "Total entries: %d\n", len(entries))

	if len(entries) == 0 {
		return b.String()
	}

	weekAgo := ctx.Clock.Now().Add(-constants.WeekWindowDays * 24 * time.Hour)
	fmt.Fprintf(&b, "This week: %d\n", engine.MoodCountSince(entries, weekAgo))
	if most, ok := engine.MostCommonMood(entries); ok {
		fmt.Fprintf(&b, "Most common: %s\n", most)
	}

	b.WriteString("\nRecent:\n")
	n := min(len(entries), constants.MoodSummaryRecentCount)
	for _, e := range entries[:n] {
		line := fmt.Sprintf("%s %s", ctx.localTime(e.Timestamp), e.Emoji)
		if e.Note != "" {
			line += " " + e.Note
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

type MoodEmojisCmd struct{}

func (c *MoodEmojisCmd) Run(ctx *Context) error {
	for _, category := range mood.Categories {
		var picks []string
		for _, e := range mood.Palette {
			if mood.CategoryFor(e) == category {
				picks = append(picks, e)
			}
		}
		ctx.printf("%-9s %s\n", category.Label(), strings.Join(picks, " "))
	}
	return nil
}
