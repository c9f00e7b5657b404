package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/brightwell/internal/constants"
)

// Logger is the process-wide logger. It stays nil until Init, and every helper
// below is a no-op while it is.
var Logger *log.Logger

var rotator *lumberjack.Logger

type Config struct {
	Debug bool
	// LogDir overrides <ConfigDir>/logs.
	LogDir    string
	ConfigDir string
	// Stderr receives a copy of every record in debug mode; defaults to os.Stderr.
	Stderr io.Writer
}

// Dir resolves the directory log files are written to.
func (c Config) Dir() string {
	if c.LogDir != "" {
		return c.LogDir
	}
	return filepath.Join(c.ConfigDir, constants.LogDirName)
}

// Init points the global logger at a rotating file, mirrored to stderr in debug mode.
func Init(cfg Config) error {
	dir := cfg.Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	Close()
	rotator = &lumberjack.Logger{
		Filename:   filepath.Join(dir, constants.LogFileName),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     30, // days
		Compress:   true,
	}

	level := log.WarnLevel
	var writer io.Writer = rotator
	if cfg.Debug {
		level = log.DebugLevel
		stderr := cfg.Stderr
		if stderr == nil {
			stderr = os.Stderr
		}
		writer = io.MultiWriter(stderr, rotator)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

// Close flushes and releases the log file.
func Close() {
	if rotator != nil {
		_ = rotator.Close()
		rotator = nil
	}
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
