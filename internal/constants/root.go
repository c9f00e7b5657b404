package constants

const (
	AppName           = "brightwell"
	DefaultConfigPath = "~/.config/brightwell/brightwell.db"
	DefaultConfigFile = "~/.config/brightwell/config.yaml"
	Version           = "v0.3.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "brightwell-"
	BackupFileSuffix = ".db"

	// Lock constants
	LockfileName = "brightwell.lock"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "brightwell.log"
)
