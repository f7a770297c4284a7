package storage

import (
	"fmt"
	"slices"

	"github.com/julianstephens/dayfit/internal/constants"
)

type Settings struct {
	Theme        string `json:"theme"`
	NumberFormat string `json:"number_format"`
	Locale       string `json:"export_locale"`
	ExportDir    string `json:"export_dir,omitempty"`
}

// DefaultSettings returns the settings written by Init
func DefaultSettings() Settings {
	return Settings{
		Theme:        constants.DefaultTheme,
		NumberFormat: constants.DefaultNumberFormat,
		Locale:       constants.DefaultLocale,
	}
}

// Validate rejects unknown theme, number format or locale values
func (s Settings) Validate() error {
	if !slices.Contains(constants.Themes, s.Theme) {
		return fmt.Errorf("unknown theme: %s", s.Theme)
	}
	if !slices.Contains(constants.NumberFormats, s.NumberFormat) {
		return fmt.Errorf("unknown number format: %s", s.NumberFormat)
	}
	if !slices.Contains(constants.Locales, s.Locale) {
		return fmt.Errorf("unknown export locale: %s", s.Locale)
	}
	return nil
}

// toPairs flattens settings into key/value rows
func (s Settings) toPairs() [][2]string {
	return [][2]string{
		{constants.SettingTheme, s.Theme},
		{constants.SettingNumberFormat, s.NumberFormat},
		{constants.SettingLocale, s.Locale},
		{constants.SettingExportDir, s.ExportDir},
	}
}

// apply sets one key/value row, ignoring unknown keys
func (s *Settings) apply(key, value string) {
	switch key {
	case constants.SettingTheme:
		s.Theme = value
	case constants.SettingNumberFormat:
		s.NumberFormat = value
	case constants.SettingLocale:
		s.Locale = value
	case constants.SettingExportDir:
		s.ExportDir = value
	}
}

// fillDefaults replaces empty values with defaults
func (s *Settings) fillDefaults() {
	d := DefaultSettings()
	if s.Theme == "" {
		s.Theme = d.Theme
	}
	if s.NumberFormat == "" {
		s.NumberFormat = d.NumberFormat
	}
	if s.Locale == "" {
		s.Locale = d.Locale
	}
}
