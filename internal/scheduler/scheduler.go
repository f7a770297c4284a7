package scheduler

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/dayfit/internal/constants"
	"github.com/julianstephens/dayfit/internal/duration"
	"github.com/julianstephens/dayfit/internal/logger"
	"github.com/julianstephens/dayfit/internal/models"
)

// ErrEmptyInput is returned when no table has a complete row.
var ErrEmptyInput = errors.New("no activities to calculate: add at least one activity with a name and a duration")

// InvariantError is the panic value raised when a rest-eligible task that
// should have been split reaches rest insertion.
type InvariantError struct {
	Task models.Task
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("rest insertion received unsplit task %q of %s (must be below %s)",
		e.Task.Name, duration.Format(e.Task.Duration), duration.Format(constants.SplitThreshold))
}

type Scheduler struct{}

func New() *Scheduler {
	return &Scheduler{}
}

// Calculate runs the whole pipeline over a sheet. Joint activities are
// treated as rest-exempt. Rows whose duration does not parse are skipped and
// listed on the report.
func (s *Scheduler) Calculate(sheet models.Sheet) (models.ScheduleReport, error) {
	exemptRows := make([]models.Activity, 0, len(sheet.WithoutRest)+len(sheet.Joint))
	exemptRows = append(exemptRows, sheet.WithoutRest...)
	exemptRows = append(exemptRows, sheet.Joint...)

	if countComplete(sheet.WithRest) == 0 && countComplete(exemptRows) == 0 {
		return models.ScheduleReport{}, ErrEmptyInput
	}

	eligibleTasks, skipped := s.Collect(sheet.WithRest)
	exemptTasks, exemptSkipped := s.Collect(exemptRows)
	skipped = append(skipped, exemptSkipped...)

	report := s.Aggregate(s.Schedule(eligibleTasks, true), s.Schedule(exemptTasks, false))
	report.Skipped = skipped

	logger.Debug("Calculated schedule",
		"tasks", len(report.Rows),
		"skipped", len(skipped),
		"total", duration.Format(report.GrandTotal),
		"fits", report.FitsInDay,
	)
	return report, nil
}

func countComplete(rows []models.Activity) int {
	n := 0
	for _, r := range rows {
		if !r.IsBlank() {
			n++
		}
	}
	return n
}

// Collect drops blank rows and parses the rest. Rows that fail to parse are
// logged and returned separately.
func (s *Scheduler) Collect(rows []models.Activity) ([]models.Task, []models.RowError) {
	var tasks []models.Task
	var skipped []models.RowError

	for _, row := range rows {
		if row.IsBlank() {
			continue
		}
		d, err := duration.Parse(row.Duration)
		if err != nil {
			logger.Warn("Skipping activity with invalid duration",
				"list", row.List, "name", row.Name, "duration", row.Duration, "error", err)
			skipped = append(skipped, models.RowError{
				List:     row.List,
				Name:     row.Name,
				Duration: row.Duration,
				Err:      err,
			})
			continue
		}
		tasks = append(tasks, models.Task{Name: row.Name, Duration: d})
	}

	return tasks, skipped
}

// Schedule turns parsed tasks into segment sequences. Eligible tasks are
// split first.
func (s *Scheduler) Schedule(tasks []models.Task, eligible bool) []models.TaskSchedule {
	var schedules []models.TaskSchedule
	for _, task := range tasks {
		pieces := []models.Task{task}
		if eligible {
			pieces = s.Split(task)
		}
		for _, piece := range pieces {
			schedules = append(schedules, models.TaskSchedule{
				Task:         piece,
				RestEligible: eligible,
				Segments:     s.InsertRest(piece, eligible),
			})
		}
	}
	return schedules
}

// Split cuts a task of five hours or more into four-hour chunks plus a
// remainder. Shorter tasks are returned unchanged.
func (s *Scheduler) Split(task models.Task) []models.Task {
	if task.Duration < constants.SplitThreshold {
		return []models.Task{task}
	}

	var chunks []models.Task
	remaining := task.Duration
	for remaining > 0 {
		chunk := min(remaining, constants.SplitChunk)
		chunks = append(chunks, models.Task{Name: task.Name, Duration: chunk})
		remaining -= chunk
	}
	return chunks
}

// InsertRest lays out work and break segments for one task. Exempt tasks get
// a single work segment. Eligible tasks must already be split; a duration of
// five hours or more panics with *InvariantError.
func (s *Scheduler) InsertRest(task models.Task, eligible bool) []models.Segment {
	d := task.Duration
	if !eligible {
		return []models.Segment{models.Work(d)}
	}

	switch {
	case d < constants.ShortTaskLimit:
		return []models.Segment{models.Work(d), models.Break(constants.ShortBreak)}

	case d < constants.MediumTaskLimit:
		return []models.Segment{models.Work(d), models.Break(constants.MediumBreak)}

	case d <= constants.HalvedTaskLimit:
		first, second := halves(d)
		return []models.Segment{
			models.Work(first),
			models.Break(constants.MediumBreak),
			models.Work(second),
			models.Break(constants.HalfBreak),
		}

	case d < constants.SplitThreshold:
		first, second := halves(d - constants.LeadBlock)
		return []models.Segment{
			models.Work(constants.LeadBlock),
			models.Break(constants.MediumBreak),
			models.Work(first),
			models.Break(constants.MediumBreak),
			models.Work(second),
			models.Break(constants.LongBreak),
		}
	}

	panic(&InvariantError{Task: task})
}

// halves splits d into two parts summing to d. When the minutes component of
// d is odd the first half is nudged up by 30s and the second down by 30s.
func halves(d time.Duration) (time.Duration, time.Duration) {
	h := d / 2
	if duration.Minutes(d)%2 == 0 {
		return h, d - h
	}
	return d - h + constants.Nudge, h - constants.Nudge
}

// Aggregate sums both collections and builds the display rows, rest-eligible
// tasks first.
func (s *Scheduler) Aggregate(withRest, withoutRest []models.TaskSchedule) models.ScheduleReport {
	report := models.ScheduleReport{
		Rows: make([]models.ReportRow, 0, len(withRest)+len(withoutRest)),
	}

	for _, ts := range withRest {
		report.TotalWithRest += ts.Total()
		report.Rows = append(report.Rows, row(ts))
	}
	for _, ts := range withoutRest {
		report.TotalWithoutRest += ts.Total()
		report.Rows = append(report.Rows, row(ts))
	}

	report.GrandTotal = report.TotalWithRest + report.TotalWithoutRest
	report.Remainder = constants.Day - report.GrandTotal
	report.FitsInDay = report.GrandTotal <= constants.Day
	return report
}

func row(ts models.TaskSchedule) models.ReportRow {
	r := models.ReportRow{
		Name:         ts.Task.Name,
		RestEligible: ts.RestEligible,
		Total:        ts.Total(),
	}
	for _, seg := range ts.Segments {
		if seg.Kind == models.SegmentWork {
			r.Work = append(r.Work, seg.Duration)
		}
	}
	return r
}
