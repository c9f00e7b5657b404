package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/brightwell/internal/backup"
	"github.com/julianstephens/brightwell/internal/config"
	"github.com/julianstephens/brightwell/internal/logger"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/storage"
	"github.com/julianstephens/brightwell/internal/utils"
)

type Context struct {
	Store  storage.Provider
	Clock  utils.Clock
	Config config.File
	Out    io.Writer
	In     io.Reader
}

func (c *Context) printf(format string, args ...any) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...any) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) today() string {
	return utils.TodayKey(c.Clock)
}

// confirm asks a yes/no question on In; anything but y/yes is a no.
func (c *Context) confirm(question string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	c.printf("%s [y/N]: ", question)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

func (c *Context) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	c.println(string(data))
	return nil
}

// sqlitePath returns the database path when the store is the SQLite backend.
func (c *Context) sqlitePath() (string, bool) {
	if _, ok := c.Store.(*storage.SQLiteStore); !ok {
		return "", false
	}
	return c.Store.GetConfigPath(), true
}

// PerformAutomaticBackup creates a backup when configured to and silently handles errors.
func (c *Context) PerformAutomaticBackup() {
	if !c.Config.BackupOnStart {
		return
	}
	path, ok := c.sqlitePath()
	if !ok {
		return
	}
	if _, err := backup.NewManager(path, c.Clock).Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// StoreDir is the directory holding the store, its lockfile and backups.
func (c *Context) StoreDir() string {
	return filepath.Dir(c.Store.GetConfigPath())
}

// ResolveClock picks the timezone: an explicit override first, then the stored setting.
func ResolveClock(override string, store storage.Provider) (utils.Clock, error) {
	tz := override
	if tz == "" && store != nil {
		settings, err := store.GetSettings()
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		tz = settings.Timezone
	}
	clock, err := utils.NewSystemClock(tz)
	if err != nil {
		return nil, err
	}
	return clock, nil
}

// findHabit looks a live habit up by name, falling back to its id.
func findHabit(store storage.Provider, ref string) (models.Habit, error) {
	h, err := store.GetHabitByName(ref)
	if err == nil {
		return h, nil
	}
	if h, err := store.GetHabit(strings.TrimSpace(ref)); err == nil {
		return h, nil
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", ref)
}

// matchID resolves an id or a unique id prefix against ids.
func matchID(ref string, ids []string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("id cannot be empty")
	}
	var found []string
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
		if strings.HasPrefix(id, ref) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no entry matches %q", ref)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%q matches %d entries, use more characters", ref, len(found))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// parseDay accepts "today", "yesterday" or a YYYY-MM-DD key.
func (c *Context) parseDay(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return c.today(), nil
	case "yesterday":
		return utils.ShiftDays(c.today(), -1), nil
	}
	if !utils.ValidKey(s) {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", s)
	}
	return s, nil
}

func (c *Context) localTime(t time.Time) string {
	return t.In(c.Clock.Location()).Format("2006-01-02 15:04")
}
