package variance

import (
	"testing"
	"time"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }
func floatPtr(v float64) *float64    { return &v }

func TestClassify(t *testing.T) {
	reporter := NewReporter(2, nil)

	cases := []struct {
		days int
		want models.VarianceClass
	}{
		{-3, models.VarianceOnTime},
		{0, models.VarianceOnTime},
		{1, models.VarianceAcceptable},
		{2, models.VarianceAcceptable},
		{3, models.VarianceLate},
		{30, models.VarianceLate},
	}

	for _, tc := range cases {
		if got := reporter.Classify(tc.days); got != tc.want {
			t.Errorf("Classify(%d) = %s, want %s", tc.days, got, tc.want)
		}
	}
}

func TestClassifyZeroGraceCollapsesAcceptableBand(t *testing.T) {
	reporter := NewReporter(0, nil)

	if got := reporter.Classify(0); got != models.VarianceOnTime {
		t.Fatalf("Classify(0) = %s, want on_time", got)
	}
	if got := reporter.Classify(1); got != models.VarianceLate {
		t.Fatalf("Classify(1) = %s, want late with no grace band", got)
	}
}

func TestNewReporterClampsNegativeGrace(t *testing.T) {
	reporter := NewReporter(-5, nil)
	if got := reporter.Classify(1); got != models.VarianceLate {
		t.Fatalf("negative grace must behave like zero, got %s", got)
	}
}

func TestBuild(t *testing.T) {
	reporter := NewReporter(2, nil)
	activities := []models.PlannedActivity{
		{
			ID:           "a1",
			BatchNumber:  "B-100",
			ActivityType: models.ActivityVaccination,
			DueDate:      date(2025, 6, 10),
			CompletedAt:  timePtr(date(2025, 6, 13)),
		},
		{
			// Completed early. Variance is negative, class on_time.
			ID:          "a2",
			DueDate:     date(2025, 6, 10),
			CompletedAt: timePtr(date(2025, 6, 8)),
		},
		{
			// Still open, must be skipped.
			ID:      "a3",
			DueDate: date(2025, 6, 10),
		},
		{
			// Completion timestamp mid-day still compares at day granularity.
			ID:          "a4",
			DueDate:     date(2025, 6, 10),
			CompletedAt: timePtr(time.Date(2025, 6, 11, 17, 30, 0, 0, time.UTC)),
		},
	}

	records := reporter.Build(activities)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if records[0].ActivityID != "a1" || records[0].VarianceDays != 3 || records[0].Class != models.VarianceLate {
		t.Fatalf("a1 record wrong: %+v", records[0])
	}
	if records[1].VarianceDays != -2 || records[1].Class != models.VarianceOnTime {
		t.Fatalf("a2 record wrong: %+v", records[1])
	}
	if records[2].VarianceDays != 1 || records[2].Class != models.VarianceAcceptable {
		t.Fatalf("a4 record wrong: %+v", records[2])
	}
}

func TestBuildEmptyInput(t *testing.T) {
	reporter := NewReporter(2, nil)
	if records := reporter.Build(nil); len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestFCRStatus(t *testing.T) {
	cases := []struct {
		name   string
		fcr    *float64
		status string
		color  string
	}{
		{"excellent", floatPtr(1.1), "excellent", "#16a34a"},
		{"excellent edge", floatPtr(1.2), "excellent", "#16a34a"},
		{"acceptable", floatPtr(1.35), "acceptable", "#ca8a04"},
		{"acceptable edge", floatPtr(1.5), "acceptable", "#ca8a04"},
		{"poor", floatPtr(1.51), "poor", "#dc2626"},
		{"no data", nil, "no data", "#9ca3af"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FCRStatus(tc.fcr)
			if got.Status != tc.status || got.Color != tc.color {
				t.Fatalf("FCRStatus = %+v, want %s/%s", got, tc.status, tc.color)
			}
		})
	}
}
