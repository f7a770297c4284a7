package system

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/keyring"
	"github.com/julianstephens/dayfit/internal/migration"
	"github.com/julianstephens/dayfit/internal/storage"
	"github.com/julianstephens/dayfit/internal/validation"
)

type DoctorCmd struct{}

// sqlStore is implemented by the SQLite and PostgreSQL stores.
type sqlStore interface {
	DB() *sql.DB
	Runner() (*migration.Runner, error)
}

type check struct {
	name string
	run  func(ctx *cli.Context) error
	// warn marks checks whose failure is reported but not fatal
	warn bool
	// needsDB skips the check when the database could not be loaded
	needsDB bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Settings", run: checkSettings, needsDB: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warn: true},
	{name: "OS keyring", run: checkKeyring, warn: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if s, ok := ctx.Store.(sqlStore); ok {
		db := s.DB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func versions(ctx *cli.Context) (current, latest int, ok bool, err error) {
	s, isSQL := ctx.Store.(sqlStore)
	if !isSQL {
		// The JSON store has no schema
		return 0, 0, false, nil
	}
	runner, err := s.Runner()
	if err != nil {
		return 0, 0, false, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, false, fmt.Errorf("failed to get current schema version: %w", err)
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, false, fmt.Errorf("failed to get latest schema version: %w", err)
	}
	return current, latest, true, nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, ok, err := versions(ctx)
	if err != nil || !ok {
		return err
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, ok, err := versions(ctx)
	if err != nil || !ok {
		return err
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return settings.Validate()
}

func checkValidation(ctx *cli.Context) error {
	sheet, err := ctx.Store.GetSheet()
	if err != nil {
		return fmt.Errorf("failed to get activities: %w", err)
	}
	result := validation.New().ValidateSheet(sheet)
	for _, c := range result.Conflicts {
		// An empty or overfull day is a planning problem, not a data problem
		if c.Type == validation.ConflictInvalidDuration {
			return fmt.Errorf("%s (run 'dayfit validate' for details)", c.Description)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, ok := ctx.BackupManager()
	if !ok {
		if _, isJSON := ctx.Store.(*storage.JSONStore); isJSON {
			return fmt.Errorf("backups are not kept for JSON stores")
		}
		return fmt.Errorf("backups are not kept for PostgreSQL; use pg_dump")
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'dayfit backup create'")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset == 0 && now.Location() == time.UTC {
		ctx.Printf("   Note: timezone is UTC\n")
	}
	return nil
}
