package constants

import (
	tea "github.com/charmbracelet/bubbletea"
)

// ConflictType represents the type of validation conflict
type ConflictType string

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName              = "dayfit"
	DefaultKeyringUser   = "database-connection"
	APISecretKeyringUser = "api-secret"
	DefaultConfigPath    = "~/.config/dayfit/dayfit.db"
	Version              = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "dayfit-"
	BackupFileSuffix = ".db"

	// LockfileName is the single-instance lock kept next to the database
	LockfileName = ".dayfit.lock"

	// Legacy desktop-app files
	LegacyLastInfoFile      = "last_info.dat"
	LegacySettingsFile      = "settings.dat"
	LegacyActivityNamesFile = "Activity Names.txt"

	// Env vars
	EnvAPIAddr   = "DAYFIT_API_ADDR"
	EnvAPISecret = "DAYFIT_API_SECRET"
	DefaultAddr  = "127.0.0.1:8088"
)
