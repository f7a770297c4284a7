// Package export writes a computed day plan to files a person can fill in
// during the day: an xlsx tracking sheet per locale and a PDF report.
package export

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/models"
)

const (
	sheetName   = "Sheet1"
	fontFamily  = "Vazirmatn"
	colorSleep  = "5A9BD5"
	colorDate   = "F50206"
	colorHeader = "003494"
	colorBorder = "1C4E7C"
	stateScore  = 10
	sleepName   = "Sleep"
)

// Entry is one planned activity as typed, before splitting or rests.
type Entry struct {
	Name     string
	Estimate string
}

// Entries flattens the sheet into export rows. Incomplete rows and rows
// named Sleep are left out; every workbook ends with its own sleep row.
func Entries(sheet models.Sheet) []Entry {
	var out []Entry
	for _, a := range sheet.All() {
		if a.IsBlank() || strings.TrimSpace(a.Name) == sleepName {
			continue
		}
		out = append(out, Entry{Name: strings.TrimSpace(a.Name), Estimate: strings.TrimSpace(a.Duration)})
	}
	return out
}

type labels struct {
	suffix   string
	tag      language.Tag
	states   [2]string
	headers  [3]string
	sleep    string
	rtl      bool
	localize bool
}

var localeLabels = map[string]labels{
	constants.LocaleEnglish: {
		suffix:  "En",
		tag:     language.English,
		states:  [2]string{"Physical state", "Mental state"},
		headers: [3]string{"Real Time", "Time Estimate", "Activity Name"},
		sleep:   "Sleep",
	},
	constants.LocalePersian: {
		suffix:   "Fa",
		tag:      language.Persian,
		states:   [2]string{"حالت جسمی", "حالت روحی"},
		headers:  [3]string{"زمان واقعی", "تخمین حدودی", "لیست انجام کارها"},
		sleep:    "خواب",
		rtl:      true,
		localize: true,
	},
}

// LocalesFor expands the export_locale setting into concrete locales.
func LocalesFor(setting string) []string {
	switch setting {
	case constants.LocaleEnglish, constants.LocalePersian:
		return []string{setting}
	default:
		return []string{constants.LocalePersian, constants.LocaleEnglish}
	}
}

// FileName is plan_<YYYY-MM-DD>_<En|Fa>.xlsx
func FileName(locale string, now time.Time) string {
	return fmt.Sprintf("plan_%s_%s.xlsx", now.Format(constants.DateFormat), localeLabels[locale].suffix)
}

// DateLabel renders the date cell, YYYY.MM.DD in the locale's digits.
func DateLabel(locale string, now time.Time) string {
	l := localeLabels[locale]
	if !l.localize {
		return now.Format("2006.01.02")
	}
	p := message.NewPrinter(l.tag)
	part := func(v, width int) string {
		return p.Sprint(number.Decimal(v, number.NoSeparator(), number.MinIntegerDigits(width)))
	}
	return part(now.Year(), 4) + "." + part(int(now.Month()), 2) + "." + part(now.Day(), 2)
}

type styles struct {
	body, header, name, date         int
	left, right, lastLeft, lastRight int
	sleepLeft, sleepMid, sleepRight  int
}

func border(sides ...string) []excelize.Border {
	out := make([]excelize.Border, len(sides))
	for i, side := range sides {
		out[i] = excelize.Border{Type: side, Color: colorBorder, Style: 2}
	}
	return out
}

func newStyles(f *excelize.File) (styles, error) {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}
	}
	body := &excelize.Font{Family: fontFamily, Size: 11, Color: "000000"}
	white := &excelize.Font{Family: fontFamily, Size: 11, Color: "FFFFFF"}
	whiteBold := &excelize.Font{Family: fontFamily, Size: 11, Color: "FFFFFF", Bold: true}
	boxed := border("left", "top", "right", "bottom")

	var s styles
	defs := []struct {
		dst   *int
		style excelize.Style
	}{
		{&s.body, excelize.Style{Font: body, Alignment: center}},
		{&s.header, excelize.Style{Font: whiteBold, Fill: fill(colorHeader), Border: boxed, Alignment: center}},
		{&s.name, excelize.Style{Font: whiteBold, Fill: fill("000000"), Border: boxed, Alignment: center}},
		{&s.date, excelize.Style{Font: whiteBold, Fill: fill(colorDate), Border: boxed, Alignment: center}},
		{&s.left, excelize.Style{Font: body, Border: border("left"), Alignment: center}},
		{&s.right, excelize.Style{Font: body, Border: border("right"), Alignment: center}},
		{&s.lastLeft, excelize.Style{Font: body, Border: border("left", "bottom"), Alignment: center}},
		{&s.lastRight, excelize.Style{Font: body, Border: border("right", "bottom"), Alignment: center}},
		{&s.sleepLeft, excelize.Style{Font: white, Fill: fill(colorSleep), Border: border("left", "bottom"), Alignment: center}},
		{&s.sleepMid, excelize.Style{Font: white, Fill: fill(colorSleep), Border: border("bottom"), Alignment: center}},
		{&s.sleepRight, excelize.Style{Font: white, Fill: fill(colorSleep), Border: border("right", "bottom"), Alignment: center}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(&d.style)
		if err != nil {
			return styles{}, err
		}
		*d.dst = id
	}
	return s, nil
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// Workbook writes the tracking sheet for one locale into dir and returns
// its path. The states table sits at B2:C3 and the activities table at
// D2:F<n>, with the date in G2.
func Workbook(entries []Entry, locale, dir string, now time.Time) (string, error) {
	l, ok := localeLabels[locale]
	if !ok {
		return "", fmt.Errorf("unsupported export locale: %s", locale)
	}

	f := excelize.NewFile()
	defer f.Close()

	st, err := newStyles(f)
	if err != nil {
		return "", fmt.Errorf("failed to create styles: %w", err)
	}

	for col, width := range map[string]float64{"B": 15, "C": 15, "D": 15, "E": 15, "F": 25, "G": 15} {
		if err := f.SetColWidth(sheetName, col, col, width); err != nil {
			return "", err
		}
	}

	const top = 2
	lastRow := top + len(entries) + 1

	// Cell references below are static and in range.
	if err := f.SetCellStyle(sheetName, "A1", cell("G", lastRow), st.body); err != nil {
		return "", err
	}

	// States table
	f.SetCellValue(sheetName, cell("B", top), l.states[0])
	f.SetCellValue(sheetName, cell("C", top), l.states[1])
	f.SetCellValue(sheetName, cell("B", top+1), stateScore)
	f.SetCellValue(sheetName, cell("C", top+1), stateScore)
	f.SetCellStyle(sheetName, cell("B", top+1), cell("B", top+1), st.lastLeft)
	f.SetCellStyle(sheetName, cell("C", top+1), cell("C", top+1), st.lastRight)

	// Activities table, ending with the sleep row
	for i, h := range l.headers {
		f.SetCellValue(sheetName, cell(string(rune('D'+i)), top), h)
	}
	for i, e := range entries {
		row := top + 1 + i
		f.SetCellValue(sheetName, cell("D", row), "")
		f.SetCellValue(sheetName, cell("E", row), e.Estimate)
		f.SetCellValue(sheetName, cell("F", row), e.Name)
		f.SetCellStyle(sheetName, cell("D", row), cell("D", row), st.left)
		f.SetCellStyle(sheetName, cell("F", row), cell("F", row), st.right)
	}
	f.SetCellValue(sheetName, cell("F", lastRow), l.sleep)
	f.SetCellStyle(sheetName, cell("D", lastRow), cell("D", lastRow), st.sleepLeft)
	f.SetCellStyle(sheetName, cell("E", lastRow), cell("E", lastRow), st.sleepMid)
	f.SetCellStyle(sheetName, cell("F", lastRow), cell("F", lastRow), st.sleepRight)

	f.SetCellStyle(sheetName, cell("B", top), cell("E", top), st.header)
	f.SetCellStyle(sheetName, cell("F", top), cell("F", top), st.name)
	f.SetCellValue(sheetName, cell("G", top), DateLabel(locale, now))
	f.SetCellStyle(sheetName, cell("G", top), cell("G", top), st.date)

	stripes := true
	for _, t := range []excelize.Table{
		{Range: fmt.Sprintf("B%d:C%d", top, top+1), Name: "States"},
		{Range: fmt.Sprintf("D%d:F%d", top, lastRow), Name: "Activities"},
	} {
		t.StyleName = "TableStyleMedium2"
		t.ShowRowStripes = &stripes
		if err := f.AddTable(sheetName, &t); err != nil {
			return "", fmt.Errorf("failed to add table %s: %w", t.Name, err)
		}
	}

	if l.rtl {
		rtl := true
		if err := f.SetSheetView(sheetName, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return "", err
		}
	}

	path := filepath.Join(dir, FileName(locale, now))
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return path, nil
}

// All writes one workbook per locale concurrently and returns the paths in
// locale order.
func All(ctx context.Context, entries []Entry, locales []string, dir string, now time.Time) ([]string, error) {
	paths := make([]string, len(locales))
	g, ctx := errgroup.WithContext(ctx)
	for i, locale := range locales {
		i, locale := i, locale
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := Workbook(entries, locale, dir, now)
			if err != nil {
				return fmt.Errorf("%s workbook: %w", locale, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
