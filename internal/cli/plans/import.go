package plans

import (
	"fmt"
	"os"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/sheetio"
)

type ImportCmd struct {
	Legacy ImportLegacyCmd `cmd:"" help:"Import last_info.dat, settings.dat and Activity Names.txt from a directory."`
	YAML   ImportYAMLCmd   `cmd:"" name:"yaml" help:"Replace the current activities with a YAML sheet."`
}

type ImportLegacyCmd struct {
	Dir string `arg:"" help:"Directory holding the legacy files." type:"existingdir"`
}

func (c *ImportLegacyCmd) Run(ctx *cli.Context) error {
	base, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	imp, err := sheetio.ReadLegacyDir(c.Dir, base)
	if err != nil {
		return err
	}

	// Keep a restorable copy of what is about to be replaced
	ctx.PerformAutomaticBackup()

	if imp.Sheet != nil {
		if err := ctx.Store.SaveSheet(*imp.Sheet); err != nil {
			return fmt.Errorf("failed to save activities: %w", err)
		}
		ctx.Printf("  Imported %d activities\n", imp.Sheet.Len())
	}
	if imp.Settings != nil {
		if err := ctx.Store.SaveSettings(*imp.Settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("  Imported settings")
	}
	if len(imp.Names) > 0 {
		if err := ctx.Store.AddActivityNames(imp.Names...); err != nil {
			return fmt.Errorf("failed to save activity names: %w", err)
		}
		ctx.Printf("  Imported %d activity names\n", len(imp.Names))
	}
	ctx.Printf("✓ Imported from %d file(s)\n", len(imp.SourceFiles))
	return nil
}

type ImportYAMLCmd struct {
	File string `arg:"" help:"YAML sheet to import." type:"existingfile"`
}

func (c *ImportYAMLCmd) Run(ctx *cli.Context) error {
	sheet, err := sheetio.LoadYAMLFile(c.File)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Store.SaveSheet(sheet); err != nil {
		return fmt.Errorf("failed to save activities: %w", err)
	}
	ctx.Printf("✓ Imported %d activities from %s\n", sheet.Len(), c.File)
	return nil
}

func writeLastInfo(path string, sheet models.Sheet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sheetio.WriteLastInfo(f, sheet); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
