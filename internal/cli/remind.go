package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/brightwell/internal/lock"
	"github.com/julianstephens/brightwell/internal/logger"
	"github.com/julianstephens/brightwell/internal/reminder"
)

type RemindCmd struct {
	Watch bool          `help:"Keep running and check on a schedule."`
	Every time.Duration `help:"How often to check in watch mode." default:"1m"`
}

func (c *RemindCmd) Run(ctx *Context) error {
	checker := &reminder.Checker{Store: ctx.Store, Clock: ctx.Clock, Out: ctx.out()}

	if !c.Watch {
		sent, err := checker.Check()
		if err != nil {
			return err
		}
		if !sent {
			ctx.println("No reminder due.")
		}
		return nil
	}

	l, err := lock.Acquire(ctx.StoreDir())
	if err != nil {
		return err
	}
	defer l.Release()

	watcher := reminder.NewWatcher(checker)
	if _, err := watcher.Schedule(c.Every); err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Reminder watcher started", "every", c.Every)
	ctx.printf("Watching hydration every %s, press Ctrl+C to stop.\n", c.Every)
	if _, err := checker.Check(); err != nil {
		logger.Error("Reminder check failed", "error", err)
	}
	watcher.Start()
	<-sigCtx.Done()
	watcher.Stop()
	logger.Info("Reminder watcher stopped")
	return nil
}
