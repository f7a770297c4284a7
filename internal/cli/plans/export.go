package plans

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/constants"
	apperrors "github.com/julianstephens/dayfit/internal/errors"
	"github.com/julianstephens/dayfit/internal/export"
	"github.com/julianstephens/dayfit/internal/sheetio"
)

var nowFunc = time.Now

type ExportCmd struct {
	File   string `short:"f" help:"Export a YAML sheet instead of the database." type:"path"`
	Dir    string `short:"o" help:"Output directory. Defaults to the export_dir setting." type:"path"`
	Locale string `help:"Workbook language (${locales}). Defaults to the export_locale setting."`
	PDF    bool   `help:"Also write the calculated schedule as a PDF."`
	YAML   bool   `name:"yaml" help:"Also write the activities as a YAML sheet."`
	Legacy bool   `help:"Also write the activities as last_info.dat."`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	sheet, err := (&CalcCmd{File: c.File}).sheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}
	entries := export.Entries(sheet)
	if len(entries) == 0 {
		return apperrors.WithHint(errors.New("nothing to export: no complete activities"), "add one with 'dayfit activity add <name> <H:MM>'")
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	locale := settings.Locale
	if c.Locale != "" {
		if !slices.Contains(constants.Locales, c.Locale) {
			return fmt.Errorf("unknown export locale: %s", c.Locale)
		}
		locale = c.Locale
	}
	dir := c.Dir
	if dir == "" {
		dir = settings.ExportDir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	now := nowFunc()
	paths, err := export.All(context.Background(), entries, export.LocalesFor(locale), dir, now)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if c.PDF {
		report, err := ctx.Scheduler.Calculate(sheet)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, export.PDFName(now))
		if err := export.PDF(report, path, settings.NumberFormat, now); err != nil {
			return fmt.Errorf("failed to write PDF: %w", err)
		}
		paths = append(paths, path)
	}

	if c.YAML {
		path := filepath.Join(dir, fmt.Sprintf("plan_%s.yaml", now.Format(constants.DateFormat)))
		if err := sheetio.SaveYAMLFile(path, sheet); err != nil {
			return fmt.Errorf("failed to write YAML sheet: %w", err)
		}
		paths = append(paths, path)
	}

	if c.Legacy {
		path := filepath.Join(dir, constants.LegacyLastInfoFile)
		if err := writeLastInfo(path, sheet); err != nil {
			return fmt.Errorf("failed to write %s: %w", constants.LegacyLastInfoFile, err)
		}
		paths = append(paths, path)
	}

	for _, p := range paths {
		ctx.Printf("✓ Wrote %s\n", p)
	}
	return nil
}
