package scheduler

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/julianstephens/dayfit/internal/duration"
	"github.com/julianstephens/dayfit/internal/models"
)

func w(d time.Duration) models.Segment { return models.Work(d) }
func b(d time.Duration) models.Segment { return models.Break(d) }

func activity(list models.ListKind, name, dur string) models.Activity {
	return models.Activity{List: list, Name: name, Duration: dur}
}

func TestSplit(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		in   time.Duration
		want []time.Duration
	}{
		{"below threshold", 4*time.Hour + 59*time.Minute, []time.Duration{4*time.Hour + 59*time.Minute}},
		{"exactly five hours", 5 * time.Hour, []time.Duration{4 * time.Hour, time.Hour}},
		{"exactly eight hours", 8 * time.Hour, []time.Duration{4 * time.Hour, 4 * time.Hour}},
		{"nine and a half hours", 9*time.Hour + 30*time.Minute, []time.Duration{4 * time.Hour, 4 * time.Hour, 90 * time.Minute}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := s.Split(models.Task{Name: "Study", Duration: tt.in})
			if len(chunks) != len(tt.want) {
				t.Fatalf("Split(%v) returned %d chunks, want %d", tt.in, len(chunks), len(tt.want))
			}
			for i, c := range chunks {
				if c.Duration != tt.want[i] {
					t.Errorf("chunk %d = %v, want %v", i, c.Duration, tt.want[i])
				}
				if c.Name != "Study" {
					t.Errorf("chunk %d name = %q, want %q", i, c.Name, "Study")
				}
			}
		})
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	s := New()
	for d := 5 * time.Hour; d <= 23*time.Hour+59*time.Minute; d += 7 * time.Minute {
		chunks := s.Split(models.Task{Name: "x", Duration: d})

		var sum time.Duration
		for i, c := range chunks {
			sum += c.Duration
			if i < len(chunks)-1 && c.Duration != 4*time.Hour {
				t.Fatalf("Split(%v): chunk %d = %v, want 4h", d, i, c.Duration)
			}
		}
		if sum != d {
			t.Fatalf("Split(%v) sums to %v", d, sum)
		}
		wantCount := int((d + 4*time.Hour - 1) / (4 * time.Hour))
		if len(chunks) != wantCount {
			t.Fatalf("Split(%v) returned %d chunks, want %d", d, len(chunks), wantCount)
		}
	}
}

func TestInsertRest_Bands(t *testing.T) {
	s := New()

	tests := []struct {
		input string
		want  []models.Segment
	}{
		{"0:29", []models.Segment{w(29 * time.Minute), b(5 * time.Minute)}},
		{"0:30", []models.Segment{w(30 * time.Minute), b(10 * time.Minute)}},
		{"1:59", []models.Segment{w(119 * time.Minute), b(10 * time.Minute)}},
		{"2:00", []models.Segment{w(time.Hour), b(10 * time.Minute), w(time.Hour), b(15 * time.Minute)}},
		{"2:01", []models.Segment{
			w(time.Hour + time.Minute), b(10 * time.Minute), w(time.Hour), b(15 * time.Minute),
		}},
		{"3:00", []models.Segment{w(90 * time.Minute), b(10 * time.Minute), w(90 * time.Minute), b(15 * time.Minute)}},
		{"4:30", []models.Segment{
			w(time.Hour), b(10 * time.Minute), w(105 * time.Minute), b(10 * time.Minute), w(105 * time.Minute), b(20 * time.Minute),
		}},
		{"4:01", []models.Segment{
			w(time.Hour), b(10 * time.Minute), w(91 * time.Minute), b(10 * time.Minute), w(90 * time.Minute), b(20 * time.Minute),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := duration.MustParse(tt.input)
			got := s.InsertRest(models.Task{Name: "Study", Duration: d}, true)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("InsertRest(%s) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInsertRest_ThreeOhOne(t *testing.T) {
	// 3:01 lands in the long band: 1h lead then halves of 2:01.
	s := New()
	got := s.InsertRest(models.Task{Duration: duration.MustParse("3:01")}, true)
	want := []models.Segment{
		w(time.Hour), b(10 * time.Minute), w(time.Hour + time.Minute), b(10 * time.Minute), w(time.Hour), b(20 * time.Minute),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("InsertRest(3:01) = %v, want %v", got, want)
	}
}

func TestInsertRest_WorkSumMatchesInput(t *testing.T) {
	s := New()
	for d := time.Minute; d < 5*time.Hour; d += time.Minute {
		ts := models.TaskSchedule{Segments: s.InsertRest(models.Task{Duration: d}, true)}
		if ts.Work() != d {
			t.Fatalf("work for %v sums to %v", d, ts.Work())
		}
		for _, seg := range ts.Segments {
			if seg.Duration%time.Minute != 0 {
				t.Fatalf("segment %v of %v is not a whole minute", seg.Duration, d)
			}
		}
	}
}

func TestInsertRest_Exempt(t *testing.T) {
	s := New()
	for _, d := range []time.Duration{0, 29 * time.Minute, 3 * time.Hour, 9 * time.Hour} {
		got := s.InsertRest(models.Task{Duration: d}, false)
		want := []models.Segment{w(d)}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("InsertRest(%v, false) = %v, want %v", d, got, want)
		}
	}
}

func TestInsertRest_PanicsOnUnsplitTask(t *testing.T) {
	s := New()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("InsertRest(5h, true) did not panic")
		}
		if _, ok := r.(*InvariantError); !ok {
			t.Errorf("panic value is %T, want *InvariantError", r)
		}
	}()
	s.InsertRest(models.Task{Name: "Marathon", Duration: 5 * time.Hour}, true)
}

func TestCalculate_TotalTimeScenario(t *testing.T) {
	s := New()
	sheet := models.Sheet{
		WithRest:    []models.Activity{activity(models.ListWithRest, "Study", "3:00")},
		WithoutRest: []models.Activity{activity(models.ListWithoutRest, "Commute", "1:00")},
	}

	report, err := s.Calculate(sheet)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if report.TotalWithRest != 3*time.Hour+25*time.Minute {
		t.Errorf("TotalWithRest = %v, want 3h25m", report.TotalWithRest)
	}
	if report.TotalWithoutRest != time.Hour {
		t.Errorf("TotalWithoutRest = %v, want 1h", report.TotalWithoutRest)
	}
	if report.GrandTotal != 4*time.Hour+25*time.Minute {
		t.Errorf("GrandTotal = %v, want 4h25m", report.GrandTotal)
	}
	if report.Remainder != 19*time.Hour+35*time.Minute {
		t.Errorf("Remainder = %v, want 19h35m", report.Remainder)
	}
	if !report.FitsInDay || report.Status() != "Yes" {
		t.Errorf("FitsInDay = %v, Status = %q, want true/Yes", report.FitsInDay, report.Status())
	}

	if len(report.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(report.Rows))
	}
	if report.Rows[0].WorkText() != "01:30\n01:30" {
		t.Errorf("Study work text = %q", report.Rows[0].WorkText())
	}
	if report.Rows[0].Total != 3*time.Hour+25*time.Minute {
		t.Errorf("Study total = %v", report.Rows[0].Total)
	}
	if report.Rows[1].WorkText() != "01:00" || report.Rows[1].Total != time.Hour {
		t.Errorf("Commute row = %+v", report.Rows[1])
	}

	summary := report.Summary()
	wantSummary := []models.SummaryLine{
		{Label: "Time With Rest", Value: "03:25"},
		{Label: "Total Time Without Rest", Value: "01:00"},
		{Label: "Total Time", Value: "04:25"},
		{Label: "Reminder Time", Value: "19:35"},
		{Label: "Status", Value: "Yes"},
	}
	if !reflect.DeepEqual(summary, wantSummary) {
		t.Errorf("Summary() = %v, want %v", summary, wantSummary)
	}
}

func TestCalculate_JointIsRestExempt(t *testing.T) {
	s := New()
	sheet := models.Sheet{
		Joint: []models.Activity{activity(models.ListJoint, "Dinner", "1:00")},
	}

	report, err := s.Calculate(sheet)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if report.TotalWithoutRest != time.Hour || report.TotalWithRest != 0 {
		t.Errorf("totals = %v / %v, want 0 / 1h", report.TotalWithRest, report.TotalWithoutRest)
	}
	if len(report.Rows) != 1 || report.Rows[0].RestEligible {
		t.Errorf("rows = %+v, want one exempt row", report.Rows)
	}
}

func TestCalculate_FiltersMalformedRows(t *testing.T) {
	s := New()
	sheet := models.Sheet{
		WithRest: []models.Activity{
			activity(models.ListWithRest, "Eat", ""),
			activity(models.ListWithRest, "", "1:00"),
			activity(models.ListWithRest, "Run", "25:00"),
			activity(models.ListWithRest, "Read", "0:20"),
		},
	}

	report, err := s.Calculate(sheet)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if len(report.Rows) != 1 || report.Rows[0].Name != "Read" {
		t.Fatalf("rows = %+v, want only Read", report.Rows)
	}
	if report.TotalWithRest != 25*time.Minute {
		t.Errorf("TotalWithRest = %v, want 25m", report.TotalWithRest)
	}
	if len(report.Skipped) != 1 {
		t.Fatalf("skipped = %d, want 1", len(report.Skipped))
	}
	if report.Skipped[0].Name != "Run" || !errors.Is(report.Skipped[0], duration.ErrFormat) {
		t.Errorf("skipped row = %+v", report.Skipped[0])
	}
}

func TestCalculate_EmptyInput(t *testing.T) {
	s := New()
	tests := []struct {
		name  string
		sheet models.Sheet
	}{
		{"no rows", models.Sheet{}},
		{"only blank rows", models.Sheet{
			WithRest:    []models.Activity{activity(models.ListWithRest, " ", "")},
			WithoutRest: []models.Activity{activity(models.ListWithoutRest, "Eat", "  ")},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Calculate(tt.sheet)
			if !errors.Is(err, ErrEmptyInput) {
				t.Errorf("Calculate error = %v, want ErrEmptyInput", err)
			}
		})
	}
}

func TestCalculate_Overrun(t *testing.T) {
	s := New()
	sheet := models.Sheet{
		WithoutRest: []models.Activity{
			activity(models.ListWithoutRest, "Work", "20:00"),
			activity(models.ListWithoutRest, "Sleep", "5:30"),
		},
	}

	report, err := s.Calculate(sheet)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if report.FitsInDay || report.Status() != "No" {
		t.Errorf("FitsInDay = %v, want false", report.FitsInDay)
	}
	if report.Remainder != -90*time.Minute {
		t.Errorf("Remainder = %v, want -1h30m", report.Remainder)
	}
	if got := duration.Format(report.Remainder); got != "-01:30" {
		t.Errorf("formatted remainder = %q, want -01:30", got)
	}
}

func TestCalculate_ExactlyOneDayFits(t *testing.T) {
	s := New()
	sheet := models.Sheet{
		WithoutRest: []models.Activity{
			activity(models.ListWithoutRest, "A", "12:00"),
			activity(models.ListWithoutRest, "B", "12:00"),
		},
	}

	report, err := s.Calculate(sheet)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if !report.FitsInDay || report.Remainder != 0 {
		t.Errorf("FitsInDay = %v, Remainder = %v, want true/0", report.FitsInDay, report.Remainder)
	}
}

func TestCalculate_SplitsLongEligibleTask(t *testing.T) {
	s := New()
	sheet := models.Sheet{
		WithRest: []models.Activity{activity(models.ListWithRest, "Deep work", "9:00")},
	}

	report, err := s.Calculate(sheet)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// 4h + 4h + 1h chunks: 4h -> 1h,10m,1h30m,10m,1h30m,20m (4h40m) twice; 1h -> 1h,10m.
	if len(report.Rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(report.Rows))
	}
	want := 2*(4*time.Hour+40*time.Minute) + time.Hour + 10*time.Minute
	if report.TotalWithRest != want {
		t.Errorf("TotalWithRest = %v, want %v", report.TotalWithRest, want)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	s := New()
	sheet := models.Sheet{
		WithRest:    []models.Activity{activity(models.ListWithRest, "Study", "4:01"), activity(models.ListWithRest, "Bad", "x")},
		WithoutRest: []models.Activity{activity(models.ListWithoutRest, "Commute", "1:15")},
		Joint:       []models.Activity{activity(models.ListJoint, "Lunch", "0:45")},
	}

	first, err := s.Calculate(sheet)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	second, err := s.Calculate(sheet)
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Calculate is not idempotent:\n%+v\n%+v", first, second)
	}
}
