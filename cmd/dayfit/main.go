package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/cli/activities"
	"github.com/julianstephens/dayfit/internal/cli/backups"
	"github.com/julianstephens/dayfit/internal/cli/names"
	"github.com/julianstephens/dayfit/internal/cli/plans"
	"github.com/julianstephens/dayfit/internal/cli/settings"
	"github.com/julianstephens/dayfit/internal/cli/system"
	"github.com/julianstephens/dayfit/internal/constants"
	apperrors "github.com/julianstephens/dayfit/internal/errors"
	"github.com/julianstephens/dayfit/internal/keyring"
	"github.com/julianstephens/dayfit/internal/logger"
	"github.com/julianstephens/dayfit/internal/scheduler"
	"github.com/julianstephens/dayfit/internal/storage"
)

// keyringConfig selects the connection string stored in the OS keyring.
const keyringConfig = "keyring"

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path (.db for SQLite, .json for a JSON file), a PostgreSQL connection string without a password, or 'keyring'." env:"DAYFIT_CONFIG" default:"${default_config}"`
	Debug   bool   `help:"Log debug output to stderr." env:"DAYFIT_DEBUG"`

	Init     system.InitCmd         `cmd:"" help:"Initialize dayfit storage."`
	Tui      system.TuiCmd          `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Calc     plans.CalcCmd          `cmd:"" help:"Calculate the day: split long tasks, insert rests and total against 24 hours."`
	Validate plans.ValidateCmd      `cmd:"" help:"Check activities for incomplete rows, bad durations and overruns."`
	Export   plans.ExportCmd        `cmd:"" help:"Write the day's tracking workbooks and optional PDF report."`
	Import   plans.ImportCmd        `cmd:"" help:"Import activities from legacy files or a YAML sheet."`
	Activity activities.ActivityCmd `cmd:"" help:"Manage activities."`
	Names    names.NamesCmd         `cmd:"" help:"Manage the activity name catalogue."`
	Settings settings.SettingsCmd   `cmd:"" help:"Manage application settings."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Doctor     system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Serve      system.ServeCmd   `cmd:"" help:"Serve the calculator over HTTP."`
	Keyring    system.KeyringCmd `cmd:"" help:"Manage credentials in the OS keyring."`
	DebugTools system.DebugCmd   `cmd:"" name:"debug" help:"Debugging utilities."`
}

// noStoreCommands run without loading the database first.
var noStoreCommands = map[string]bool{
	"init":           true,
	"doctor":         true,
	"keyring set":    true,
	"keyring get":    true,
	"keyring delete": true,
	"keyring status": true,
}

func main() {
	vars := kong.Vars{
		"version":        constants.Version,
		"default_config": constants.DefaultConfigPath,
	}
	for k, v := range settings.Vars() {
		vars[k] = v
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Daily activity planner: fit tasks and rests into 24 hours"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		vars,
	)

	store, err := openStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: configDir(store),
		Console:   ctx.Command() == "serve",
	}); err != nil {
		apperrors.Fatal(err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "store", store.GetConfigPath())

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
	}
	defer store.Close()

	if !noStoreCommands[commandName(ctx.Command())] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

// commandName drops positional placeholders such as "<id>".
func commandName(command string) string {
	var parts []string
	for _, p := range strings.Fields(command) {
		if strings.HasPrefix(p, "<") {
			break
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

func openStore(config string) (storage.Provider, error) {
	if config == "" || config == keyringConfig {
		connStr, err := keyring.GetConnectionString()
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return nil, apperrors.WithHint(err, "store one with 'dayfit keyring set <connection string>'")
			}
			return nil, err
		}
		// Keyring entries may carry a password
		return storage.NewPostgresStore(connStr), nil
	}
	return storage.NewProvider(config)
}

// configDir is where logs live: next to file stores, in the default
// config directory otherwise.
func configDir(store storage.Provider) string {
	if _, ok := store.(*storage.PostgresStore); ok {
		if p, err := storage.ExpandPath(constants.DefaultConfigPath); err == nil {
			return filepath.Dir(p)
		}
	}
	return filepath.Dir(store.GetConfigPath())
}
