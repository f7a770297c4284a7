package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/duration"
	"github.com/julianstephens/dayfit/internal/models"
)

type ActivityFormModel struct {
	Name     string
	Duration string
	List     models.ListKind
}

type SettingsFormModel struct {
	Theme        string
	NumberFormat string
	Locale       string
	ExportDir    string
}

// NewActivityForm builds the add/edit form. Names come from the activity
// name catalogue; durations are suggested in 15 minute steps.
func NewActivityForm(fm *ActivityFormModel, names []string) *huh.Form {
	lists := make([]huh.Option[models.ListKind], len(models.ListKinds))
	for i, kind := range models.ListKinds {
		lists[i] = huh.NewOption(kind.Title(), kind)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Suggestions(names).
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("activity name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Duration").
				Description("H:MM, hours 0-23 and minutes 0-59").
				Suggestions(duration.DayTimes(constants.DurationSuggestionHours)).
				Value(&fm.Duration).
				Validate(func(s string) error {
					_, err := duration.Parse(s)
					return err
				}),
			huh.NewSelect[models.ListKind]().
				Title("Table").
				Options(lists...).
				Value(&fm.List),
		),
	)
}

func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(constants.Themes...)...).
				Value(&fm.Theme),
			huh.NewSelect[string]().
				Title("Row numbering").
				Options(huh.NewOptions(constants.NumberFormats...)...).
				Value(&fm.NumberFormat),
			huh.NewSelect[string]().
				Title("Export locale").
				Options(huh.NewOptions(constants.Locales...)...).
				Value(&fm.Locale),
			huh.NewInput().
				Title("Export directory").
				Description("Empty means the current directory").
				Value(&fm.ExportDir),
		),
	)
}
