package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/brightwell/internal/backup"
	"github.com/julianstephens/brightwell/internal/migration"
	"github.com/julianstephens/brightwell/internal/storage"
	"github.com/julianstephens/brightwell/migrations"
)

type DoctorCmd struct{}

type check struct {
	name    string
	run     func(*Context) error
	warning bool // failures are reported but do not fail the run
}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	if err := ctx.Store.Load(); err != nil {
		ctx.printf("❌ Store reachable: FAIL\n   Error: %v\n", err)
		ctx.println("\nDiagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	defer ctx.Store.Close()
	ctx.println("✓ Store reachable: OK")

	checks := []check{
		{name: "Schema version", run: checkSchemaVersion},
		{name: "Backups present", run: checkBackupsPresent, warning: true},
		{name: "Data validation", run: checkValidation},
		{name: "Clock/timezone", run: checkClockTimezone},
	}

	hasError := false
	for _, c := range checks {
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.printf("✓ %s: OK\n", c.name)
		case c.warning:
			ctx.printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
		}
	}

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	sqliteStore, ok := ctx.Store.(*storage.SQLiteStore)
	if !ok {
		// JSON store has no schema
		return nil
	}
	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	runner := migration.NewRunner(db, migrations.FS)
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than this build supports (%d)", current, latest)
	}
	pending, err := runner.Pending()
	if err != nil {
		return fmt.Errorf("failed to list pending migrations: %w", err)
	}
	if len(pending) > 0 {
		names := make([]string, len(pending))
		for i, m := range pending {
			names[i] = fmt.Sprintf("%03d_%s", m.Version, m.Name)
		}
		return fmt.Errorf("schema version %d, pending: %s", current, strings.Join(names, ", "))
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	path, ok := ctx.sqlitePath()
	if !ok {
		return fmt.Errorf("backups are not available for the JSON store")
	}
	backups, err := backup.NewManager(path, ctx.Clock).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'brightwell backup create'")
	}
	return nil
}

func checkValidation(ctx *Context) error {
	result, err := ctx.validate()
	if err != nil {
		return err
	}
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s), run 'brightwell validate' for details", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *Context) error {
	now := ctx.Clock.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format("2006-01-02 15:04:05"))
	}
	name, _ := now.Zone()
	ctx.printf("   Note: using timezone %s (%s)\n", ctx.Clock.Location(), name)
	return nil
}
