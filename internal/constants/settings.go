package constants

const (
	// Settings keys
	SettingTheme        = "theme"
	SettingNumberFormat = "number_format"
	SettingLocale       = "export_locale"
	SettingExportDir    = "export_dir"

	// Number formats for row labels
	NumberFormatNumbers  = "numbers"
	NumberFormatRoman    = "roman_numerals"
	NumberFormatAlphabet = "alphabetic"

	// Export locales
	LocaleEnglish = "en"
	LocalePersian = "fa"
	LocaleBoth    = "both"

	// Themes
	ThemeDarkRed     = "dark_red"
	ThemeDarkGreen   = "dark_green"
	ThemeDarkBlue    = "dark_blue"
	ThemeLight       = "light"
	ThemeDarkMode    = "dark_mode"
	ThemeDarkPink    = "dark_pink"
	ThemeTheBest     = "the_best_theme"
	ThemeOptimal     = "optimal_theme"
	ThemeDarkOptimal = "dark_optimal_theme"

	// Default Settings Values
	DefaultTheme        = ThemeDarkRed
	DefaultNumberFormat = NumberFormatNumbers
	DefaultLocale       = LocaleBoth
)

// Themes lists every theme name in display order.
var Themes = []string{
	ThemeDarkRed, ThemeDarkGreen, ThemeDarkBlue, ThemeLight, ThemeDarkMode,
	ThemeDarkPink, ThemeTheBest, ThemeOptimal, ThemeDarkOptimal,
}

// NumberFormats lists every row label format.
var NumberFormats = []string{NumberFormatNumbers, NumberFormatRoman, NumberFormatAlphabet}

// Locales lists every export locale option.
var Locales = []string{LocaleEnglish, LocalePersian, LocaleBoth}
