// Package sheetio reads and writes activity sheets and reports as files:
// YAML sheets, JSON or YAML reports, and the plain-text formats of the
// legacy desktop application.
package sheetio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/dayfit/internal/models"
)

type sheetRow struct {
	Name     string `yaml:"name"`
	Duration string `yaml:"duration"`
}

type sheetFile struct {
	WithRest    []sheetRow `yaml:"with_rest"`
	WithoutRest []sheetRow `yaml:"without_rest"`
	Joint       []sheetRow `yaml:"joint"`
}

func (f *sheetFile) rows(kind models.ListKind) *[]sheetRow {
	switch kind {
	case models.ListWithRest:
		return &f.WithRest
	case models.ListWithoutRest:
		return &f.WithoutRest
	default:
		return &f.Joint
	}
}

// LoadYAML decodes a sheet. Missing lists are empty.
func LoadYAML(r io.Reader) (models.Sheet, error) {
	var f sheetFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return models.Sheet{}, fmt.Errorf("failed to parse sheet: %w", err)
	}

	var sheet models.Sheet
	for _, kind := range models.ListKinds {
		src := *f.rows(kind)
		rows := make([]models.Activity, len(src))
		for i, row := range src {
			rows[i] = models.Activity{Name: row.Name, Duration: row.Duration}
		}
		sheet.SetList(kind, rows)
	}
	return sheet, nil
}

// LoadYAMLFile reads a sheet from path.
func LoadYAMLFile(path string) (models.Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.Sheet{}, err
	}
	defer f.Close()
	return LoadYAML(f)
}

// SaveYAML encodes the name and duration of every row.
func SaveYAML(w io.Writer, sheet models.Sheet) error {
	var f sheetFile
	for _, kind := range models.ListKinds {
		dst := f.rows(kind)
		*dst = []sheetRow{}
		for _, a := range sheet.List(kind) {
			*dst = append(*dst, sheetRow{Name: a.Name, Duration: a.Duration})
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("failed to encode sheet: %w", err)
	}
	return enc.Close()
}

// SaveYAMLFile writes a sheet to path through a temp file and rename, so
// a watcher never reads a half-written sheet.
func SaveYAMLFile(path string, sheet models.Sheet) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".dayfit-tmp-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if err := SaveYAML(tmp, sheet); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
