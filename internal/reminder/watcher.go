package reminder

import (
	"fmt"
	"io"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/brightwell/internal/engine"
	"github.com/julianstephens/brightwell/internal/logger"
	"github.com/julianstephens/brightwell/internal/models"
	"github.com/julianstephens/brightwell/internal/utils"
)

// Store is the part of storage.Provider the checker reads and writes.
type Store interface {
	GetSettings() (models.Settings, error)
	GetHydrationEntries() ([]models.HydrationEntry, error)
	LastReminder() (time.Time, bool, error)
	RecordReminder(at time.Time) error
}

// Checker evaluates Due against the store and prints the reminder when it fires.
type Checker struct {
	Store Store
	Clock utils.Clock
	Out   io.Writer
}

// Check runs one evaluation and reports whether a reminder was sent.
func (c *Checker) Check() (bool, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return false, fmt.Errorf("failed to load settings: %w", err)
	}
	entries, err := c.Store.GetHydrationEntries()
	if err != nil {
		return false, fmt.Errorf("failed to load hydration log: %w", err)
	}
	last, _, err := c.Store.LastReminder()
	if err != nil {
		return false, fmt.Errorf("failed to load reminder log: %w", err)
	}

	now := c.Clock.Now()
	today := utils.TodayKey(c.Clock)
	due, reason := Due(State{Settings: settings, Entries: entries, LastReminder: last, Now: now, Today: today})
	if !due {
		logger.Debug("Reminder skipped", "reason", reason)
		return false, nil
	}

	total := engine.DailyHydrationTotal(entries, today)
	if _, err := fmt.Fprintf(c.Out, "[%s] %s\n", now.Format("15:04"), Message(total, settings.HydrationGoalMl)); err != nil {
		return false, err
	}
	if err := c.Store.RecordReminder(now); err != nil {
		return true, fmt.Errorf("failed to record reminder: %w", err)
	}
	logger.Info("Reminder sent", "total_ml", total, "goal_ml", settings.HydrationGoalMl)
	return true, nil
}

// Watcher runs a Checker on a fixed cadence.
type Watcher struct {
	cron    *cron.Cron
	checker *Checker
}

func NewWatcher(checker *Checker) *Watcher {
	return &Watcher{
		cron:    cron.New(cron.WithLocation(checker.Clock.Location())),
		checker: checker,
	}
}

// Schedule registers the check every interval. Intervals are rounded down to
// whole seconds, with a one second minimum.
func (w *Watcher) Schedule(interval time.Duration) (cron.EntryID, error) {
	if interval <= 0 {
		return 0, fmt.Errorf("interval must be positive")
	}
	seconds := int(interval.Seconds())
	if seconds <= 0 {
		seconds = 1
	}
	return w.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), func() {
		if _, err := w.checker.Check(); err != nil {
			logger.Error("Reminder check failed", "error", err)
		}
	})
}

func (w *Watcher) Start() {
	w.cron.Start()
}

// Stop waits for a running check to finish.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
}
