package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/brightwell/internal/cli"
	"github.com/julianstephens/brightwell/internal/config"
	"github.com/julianstephens/brightwell/internal/constants"
	"github.com/julianstephens/brightwell/internal/logger"
	"github.com/julianstephens/brightwell/internal/storage"
)

type CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"Store path (default ${default_store}). A .json suffix selects the JSON store." env:"BRIGHTWELL_STORE"`
	SettingsFile string `help:"YAML settings file." default:"${default_settings}" env:"BRIGHTWELL_SETTINGS"`
	Timezone     string `help:"IANA timezone, overrides the stored setting." env:"BRIGHTWELL_TIMEZONE"`
	Debug        bool   `help:"Enable debug logging to stderr." env:"BRIGHTWELL_DEBUG"`

	Init         cli.InitCmd         `cmd:"" help:"Initialize brightwell storage."`
	Tui          cli.TuiCmd          `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Stats        cli.StatsCmd        `cmd:"" help:"Show habit, mood and hydration statistics."`
	Achievements cli.AchievementsCmd `cmd:"" help:"Show achievement progress."`
	Validate     cli.ValidateCmd     `cmd:"" help:"Check stored records for inconsistencies."`
	Doctor       cli.DoctorCmd       `cmd:"" help:"Run health checks and diagnostics."`
	Export       cli.ExportCmd       `cmd:"" help:"Export habits, moods and hydration as CSV."`
	Remind       cli.RemindCmd       `cmd:"" help:"Print a hydration reminder if one is due."`
	Habit        cli.HabitCmd        `cmd:"" help:"Manage habits and habit tracking."`
	Mood         cli.MoodCmd         `cmd:"" help:"Manage the mood journal."`
	Water        cli.WaterCmd        `cmd:"" help:"Manage the hydration log."`
	Template     cli.TemplateCmd     `cmd:"" help:"Browse and apply habit templates."`
	Settings     cli.SettingsCmd     `cmd:"" help:"Manage application settings."`
	Backup       cli.BackupCmd       `cmd:"" help:"Manage database backups."`
	DebugTools   cli.DebugCmd        `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// commands that open the store themselves or never touch it
var (
	selfLoading = []string{"init", "doctor"}
	storeless   = []string{"template list", "mood emojis"}
)

func matches(command string, prefixes []string) bool {
	for _, p := range prefixes {
		if command == p || strings.HasPrefix(command, p+" ") {
			return true
		}
	}
	return false
}

func newParser(app *CLI) (*kong.Kong, error) {
	return kong.New(app,
		kong.Name(constants.AppName),
		kong.Description("Habits, mood journal and hydration tracking in the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":          constants.Version,
			"default_store":    constants.DefaultConfigPath,
			"default_settings": constants.DefaultConfigFile,
		},
	)
}

func main() {
	// A missing .env is fine; the env tags then fall back to the real environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to read .env: %v\n", err)
	}

	var app CLI
	parser, err := newParser(&app)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := run(ctx, &app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *kong.Context, app *CLI) error {
	fileCfg, err := config.Load(app.SettingsFile)
	if err != nil {
		return err
	}
	cfg := config.Merge(fileCfg, config.File{
		Store:    config.ExpandPath(app.Config),
		Timezone: app.Timezone,
		Debug:    app.Debug,
	})
	if cfg.Store == "" {
		cfg.Store = config.ExpandPath(constants.DefaultConfigPath)
	}

	if err := logger.Init(logger.Config{
		Debug:     cfg.Debug,
		LogDir:    cfg.LogDir,
		ConfigDir: filepath.Dir(cfg.Store),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}
	defer logger.Close()

	store := storage.New(cfg.Store)
	command := ctx.Command()
	logger.Debug("Running command", "command", command, "store", cfg.Store)

	loaded := !matches(command, selfLoading) && !matches(command, storeless)
	if loaded {
		if err := store.Load(); err != nil {
			if errors.Is(err, storage.ErrNotInitialized) {
				return fmt.Errorf("%w: run 'brightwell init' first", err)
			}
			return err
		}
		defer store.Close()
	}

	var clockStore storage.Provider
	if loaded {
		clockStore = store
	}
	clock, err := cli.ResolveClock(cfg.Timezone, clockStore)
	if err != nil {
		return err
	}

	return ctx.Run(&cli.Context{
		Store:  store,
		Clock:  clock,
		Config: cfg,
		Out:    os.Stdout,
		In:     os.Stdin,
	})
}
