package models

import (
	"strings"
	"time"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/duration"
)

// Task is a parsed activity ready for splitting and rest insertion.
type Task struct {
	Name     string
	Duration time.Duration
}

type SegmentKind string

const (
	SegmentWork  SegmentKind = "work"
	SegmentBreak SegmentKind = "break"
)

// Segment is one contiguous block of work or rest.
type Segment struct {
	Kind     SegmentKind
	Duration time.Duration
}

func Work(d time.Duration) Segment  { return Segment{Kind: SegmentWork, Duration: d} }
func Break(d time.Duration) Segment { return Segment{Kind: SegmentBreak, Duration: d} }

// TaskSchedule is a task together with the segments produced for it.
type TaskSchedule struct {
	Task         Task
	RestEligible bool
	Segments     []Segment
}

// Work is the sum of the work segments.
func (s TaskSchedule) Work() time.Duration {
	var d time.Duration
	for _, seg := range s.Segments {
		if seg.Kind == SegmentWork {
			d += seg.Duration
		}
	}
	return d
}

// Total is the sum of every segment, breaks included.
func (s TaskSchedule) Total() time.Duration {
	var d time.Duration
	for _, seg := range s.Segments {
		d += seg.Duration
	}
	return d
}

// ReportRow is the display form of one scheduled task.
type ReportRow struct {
	Name         string
	RestEligible bool
	Work         []time.Duration
	Total        time.Duration
}

// WorkText renders the work blocks one per line.
func (r ReportRow) WorkText() string {
	parts := make([]string, len(r.Work))
	for i, d := range r.Work {
		parts[i] = duration.Format(d)
	}
	return strings.Join(parts, "\n")
}

// RowError describes an input row dropped because its duration did not parse.
type RowError struct {
	List     ListKind
	Name     string
	Duration string
	Err      error
}

func (e RowError) Error() string {
	return "skipping activity " + e.Name + ": " + e.Err.Error()
}

func (e RowError) Unwrap() error {
	return e.Err
}

// ScheduleReport is the result of one calculation.
type ScheduleReport struct {
	Rows             []ReportRow
	TotalWithRest    time.Duration
	TotalWithoutRest time.Duration
	GrandTotal       time.Duration
	Remainder        time.Duration
	FitsInDay        bool
	Skipped          []RowError
}

// Status is "Yes" when the schedule fits in one day.
func (r ScheduleReport) Status() string {
	if r.FitsInDay {
		return constants.StatusFits
	}
	return constants.StatusOverrun
}

type SummaryLine struct {
	Label string
	Value string
}

// Summary returns the five summary lines in display order.
func (r ScheduleReport) Summary() []SummaryLine {
	return []SummaryLine{
		{Label: constants.LabelWithRest, Value: duration.Format(r.TotalWithRest)},
		{Label: constants.LabelWithoutRest, Value: duration.Format(r.TotalWithoutRest)},
		{Label: constants.LabelTotal, Value: duration.Format(r.GrandTotal)},
		{Label: constants.LabelRemainder, Value: duration.Format(r.Remainder)},
		{Label: constants.LabelStatus, Value: r.Status()},
	}
}
