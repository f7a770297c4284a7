package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/dayfit/internal/cli"
	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/storage"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Theme        *string `help:"Colour theme (${themes})."`
	NumberFormat *string `help:"Row label format (${number_formats})."`
	Locale       *string `help:"Spreadsheet export language (${locales})."`
	ExportDir    *string `help:"Directory exports are written to. Empty means the current directory." type:"path"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		printSettings(ctx, settings)
		return nil
	}

	updated := false
	if c.Theme != nil {
		settings.Theme = strings.ToLower(*c.Theme)
		updated = true
	}
	if c.NumberFormat != nil {
		settings.NumberFormat = strings.ToLower(*c.NumberFormat)
		updated = true
	}
	if c.Locale != nil {
		settings.Locale = strings.ToLower(*c.Locale)
		updated = true
	}
	if c.ExportDir != nil {
		settings.ExportDir = *c.ExportDir
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	ctx.Println("Settings updated successfully.")
	return nil
}

func printSettings(ctx *cli.Context, s storage.Settings) {
	exportDir := s.ExportDir
	if exportDir == "" {
		exportDir = "(current directory)"
	}
	ctx.Println("Current Settings:")
	ctx.Printf("  Theme:          %s\n", s.Theme)
	ctx.Printf("  Number Format:  %s\n", s.NumberFormat)
	ctx.Printf("  Export Locale:  %s\n", s.Locale)
	ctx.Printf("  Export Dir:     %s\n", exportDir)
}

// Vars exposes the allowed values to kong help strings.
func Vars() map[string]string {
	return map[string]string{
		"themes":         strings.Join(constants.Themes, ", "),
		"number_formats": strings.Join(constants.NumberFormats, ", "),
		"locales":        strings.Join(constants.Locales, ", "),
	}
}
