package storage

import (
	"errors"

	"github.com/julianstephens/dayfit/internal/models"
)

var (
	// ErrNotFound is returned when an activity does not exist
	ErrNotFound = errors.New("not found")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Sheet
	GetSheet() (models.Sheet, error)
	// SaveSheet replaces every live activity with the given sheet. Soft
	// deleted rows are kept so they can still be restored.
	SaveSheet(models.Sheet) error

	// Activities
	AddActivity(models.Activity) (models.Activity, error)
	GetActivity(id string) (models.Activity, error)
	GetDeletedActivities() ([]models.Activity, error)
	UpdateActivity(models.Activity) error
	DeleteActivity(id string) error
	RestoreActivity(id string) error

	// Activity names
	GetActivityNames() ([]string, error)
	AddActivityNames(names ...string) error
	RemoveActivityName(name string) error

	// Utils
	GetConfigPath() string
}
