package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/storage"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized dayfit storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying data from: %s\n", c.Source)
		if err := c.copyFrom(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*storage.PostgresStore); ok {
		return fmt.Errorf("--force is only supported for file-backed stores")
	}
	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyFrom moves settings, the current sheet and the name catalogue
// from another store into the freshly initialized one.
func (c *InitCmd) copyFrom(ctx *cli.Context, source string) error {
	src, err := storage.NewProvider(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	ctx.Println("  Copying settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	ctx.Println("  Copying activities...")
	sheet, err := src.GetSheet()
	if err != nil {
		return fmt.Errorf("failed to get activities from source: %w", err)
	}
	if err := ctx.Store.SaveSheet(sheet); err != nil {
		return fmt.Errorf("failed to save activities to destination: %w", err)
	}
	ctx.Printf("    Copied %d activities\n", sheet.Len())

	ctx.Println("  Copying activity names...")
	names, err := src.GetActivityNames()
	if err != nil {
		return fmt.Errorf("failed to get activity names from source: %w", err)
	}
	if err := ctx.Store.AddActivityNames(names...); err != nil {
		return fmt.Errorf("failed to save activity names to destination: %w", err)
	}
	ctx.Printf("    Copied %d names\n", len(names))
	return nil
}
