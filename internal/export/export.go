// Package export writes the stored records as CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/julianstephens/brightwell/internal/models"
)

const (
	HabitsFile    = "habits.csv"
	MoodsFile     = "moods.csv"
	HydrationFile = "hydration.csv"
)

// WriteHabits writes one row per completed day, grouped by habit name.
func WriteHabits(w io.Writer, habits []models.Habit) error {
	sorted := append([]models.Habit(nil), habits...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"habit_id", "name", "description", "day"}); err != nil {
		return err
	}
	for _, h := range sorted {
		for _, day := range h.CompletionDates.Sorted() {
			if err := cw.Write([]string{h.ID, h.Name, h.Description, day}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMoods writes the journal oldest first with timestamps rendered in loc.
func WriteMoods(w io.Writer, entries []models.MoodEntry, loc *time.Location) error {
	sorted := append([]models.MoodEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "timestamp", "emoji", "category", "note"}); err != nil {
		return err
	}
	for _, e := range sorted {
		row := []string{e.ID, e.Timestamp.In(loc).Format(time.RFC3339), e.Emoji, e.Category, e.Note}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteHydration writes the log oldest first with timestamps rendered in loc.
func WriteHydration(w io.Writer, entries []models.HydrationEntry, loc *time.Location) error {
	sorted := append([]models.HydrationEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "day", "timestamp", "amount_ml"}); err != nil {
		return err
	}
	for _, e := range sorted {
		row := []string{e.ID, e.Day, e.Timestamp.In(loc).Format(time.RFC3339), strconv.Itoa(e.AmountMl)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Snapshot is everything WriteDir exports.
type Snapshot struct {
	Habits    []models.Habit
	Moods     []models.MoodEntry
	Hydration []models.HydrationEntry
}

// WriteDir writes the three CSV files into dir and returns their paths.
func WriteDir(dir string, snap Snapshot, loc *time.Location) ([]string, error) {
	if loc == nil {
		loc = time.Local
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	files := []struct {
		name  string
		write func(io.Writer) error
	}{
		{HabitsFile, func(w io.Writer) error { return WriteHabits(w, snap.Habits) }},
		{MoodsFile, func(w io.Writer) error { return WriteMoods(w, snap.Moods, loc) }},
		{HydrationFile, func(w io.Writer) error { return WriteHydration(w, snap.Hydration, loc) }},
	}

	var paths []string
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := writeFile(path, f.write); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
