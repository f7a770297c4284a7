package sheetio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/logger"
	"github.com/julianstephens/dayfit/internal/models"
	"github.com/julianstephens/dayfit/internal/storage"
)

var legacySections = map[string]models.ListKind{
	"[Activities with breaks]":    models.ListWithRest,
	"[Activities without breaks]": models.ListWithoutRest,
	"[Daily joint activities]":    models.ListJoint,
}

// ReadLastInfo parses a last_info.dat snapshot. Lines that are not
// name|duration pairs, and rows whose name and duration are both empty,
// are ignored.
func ReadLastInfo(r io.Reader) (models.Sheet, error) {
	rows := make(map[models.ListKind][]models.Activity)
	var current models.ListKind

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if kind, ok := legacySections[line]; ok {
			current = kind
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) != 2 || current == "" {
			continue
		}
		name, dur := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if name == "" && dur == "" {
			continue
		}
		rows[current] = append(rows[current], models.Activity{Name: name, Duration: dur})
	}
	if err := sc.Err(); err != nil {
		return models.Sheet{}, fmt.Errorf("failed to read last info: %w", err)
	}

	var sheet models.Sheet
	for _, kind := range models.ListKinds {
		sheet.SetList(kind, rows[kind])
	}
	return sheet, nil
}

// WriteLastInfo writes a sheet in the last_info.dat layout.
func WriteLastInfo(w io.Writer, sheet models.Sheet) error {
	bw := bufio.NewWriter(w)
	for i, kind := range models.ListKinds {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "[%s]\n", kind.Title())
		for _, a := range sheet.List(kind) {
			fmt.Fprintf(bw, "%s|%s\n", a.Name, a.Duration)
		}
	}
	return bw.Flush()
}

// ReadLegacySettings applies settings.dat key:value lines on top of base.
// Values the planner does not know are ignored with a warning.
func ReadLegacySettings(r io.Reader, base storage.Settings) (storage.Settings, error) {
	settings := base
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch key {
		case "Theme":
			if slices.Contains(constants.Themes, value) {
				settings.Theme = value
			} else {
				logger.Warn("Ignoring unknown legacy theme", "theme", value)
			}
		case "Number_Format":
			format := strings.ToLower(value)
			if slices.Contains(constants.NumberFormats, format) {
				settings.NumberFormat = format
			} else {
				logger.Warn("Ignoring unknown legacy number format", "format", value)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return base, fmt.Errorf("failed to read legacy settings: %w", err)
	}
	return settings, nil
}

// ReadActivityNames reads one name per line, skipping blanks.
func ReadActivityNames(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if name := strings.TrimSpace(sc.Text()); name != "" {
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity names: %w", err)
	}
	return names, nil
}

// LegacyImport is everything found in a legacy Files directory.
type LegacyImport struct {
	Sheet       *models.Sheet
	Settings    *storage.Settings
	Names       []string
	SourceFiles []string
}

// ReadLegacyDir loads whichever legacy files exist in dir.
func ReadLegacyDir(dir string, base storage.Settings) (LegacyImport, error) {
	var out LegacyImport

	open := func(name string) (*os.File, string, error) {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if os.IsNotExist(err) {
			return nil, path, nil
		}
		return f, path, err
	}

	f, path, err := open(constants.LegacyLastInfoFile)
	if err != nil {
		return out, err
	}
	if f != nil {
		sheet, err := ReadLastInfo(f)
		f.Close()
		if err != nil {
			return out, err
		}
		out.Sheet = &sheet
		out.SourceFiles = append(out.SourceFiles, path)
	}

	f, path, err = open(constants.LegacySettingsFile)
	if err != nil {
		return out, err
	}
	if f != nil {
		settings, err := ReadLegacySettings(f, base)
		f.Close()
		if err != nil {
			return out, err
		}
		out.Settings = &settings
		out.SourceFiles = append(out.SourceFiles, path)
	}

	f, path, err = open(constants.LegacyActivityNamesFile)
	if err != nil {
		return out, err
	}
	if f != nil {
		names, err := ReadActivityNames(f)
		f.Close()
		if err != nil {
			return out, err
		}
		out.Names = names
		out.SourceFiles = append(out.SourceFiles, path)
	}

	if len(out.SourceFiles) == 0 {
		return out, fmt.Errorf("no legacy files found in %s", dir)
	}
	return out, nil
}
