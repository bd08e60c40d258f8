package trigger

import (
	"errors"
	"testing"
	"time"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvaluateDayOffset(t *testing.T) {
	evaluator := NewEvaluator()
	tmpl := models.ActivityTemplate{
		Name:         "90-day vaccination",
		ActivityType: models.ActivityVaccination,
		TriggerType:  models.TriggerDayOffset,
		DayOffset:    intPtr(90),
		IsActive:     true,
	}
	snapshot := models.BatchLifecycleSnapshot{BatchID: "b1", StartDate: date(2025, 1, 1)}

	outcome, err := evaluator.Evaluate(tmpl, snapshot, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Due {
		t.Fatal("expected day-offset trigger to be due")
	}
	if want := date(2025, 4, 1); !outcome.DueDate.Equal(want) {
		t.Fatalf("due date = %s, want %s", outcome.DueDate, want)
	}
}

func TestEvaluateWeightThreshold(t *testing.T) {
	evaluator := NewEvaluator()
	tmpl := models.ActivityTemplate{
		Name:                 "harvest at 4.5kg",
		ActivityType:         models.ActivityHarvest,
		TriggerType:          models.TriggerWeightThreshold,
		WeightThresholdGrams: floatPtr(4500),
		IsActive:             true,
	}
	snapshot := models.BatchLifecycleSnapshot{BatchID: "b1", StartDate: date(2025, 1, 1)}
	projection := []models.GrowthProjectionPoint{
		{Day: 100, WeightGrams: 3000},
		{Day: 200, WeightGrams: 4400},
		{Day: 300, WeightGrams: 4600},
		{Day: 400, WeightGrams: 5200},
	}

	outcome, err := evaluator.Evaluate(tmpl, snapshot, projection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Due {
		t.Fatal("expected weight trigger to be due")
	}
	// First crossing day, not the last.
	if want := date(2025, 1, 1).AddDate(0, 0, 300); !outcome.DueDate.Equal(want) {
		t.Fatalf("due date = %s, want %s", outcome.DueDate, want)
	}
}

func TestEvaluateWeightThresholdUnsortedProjection(t *testing.T) {
	evaluator := NewEvaluator()
	tmpl := models.ActivityTemplate{
		Name:                 "t",
		ActivityType:         models.ActivityHarvest,
		TriggerType:          models.TriggerWeightThreshold,
		WeightThresholdGrams: floatPtr(4500),
	}
	snapshot := models.BatchLifecycleSnapshot{StartDate: date(2025, 1, 1)}
	projection := []models.GrowthProjectionPoint{
		{Day: 400, WeightGrams: 5200},
		{Day: 300, WeightGrams: 4600},
		{Day: 100, WeightGrams: 3000},
	}

	outcome, err := evaluator.Evaluate(tmpl, snapshot, projection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := date(2025, 1, 1).AddDate(0, 0, 300); !outcome.DueDate.Equal(want) {
		t.Fatalf("due date = %s, want %s", outcome.DueDate, want)
	}
}

func TestEvaluateWeightThresholdNeverReached(t *testing.T) {
	evaluator := NewEvaluator()
	tmpl := models.ActivityTemplate{
		Name:                 "t",
		ActivityType:         models.ActivityHarvest,
		TriggerType:          models.TriggerWeightThreshold,
		WeightThresholdGrams: floatPtr(9000),
	}
	snapshot := models.BatchLifecycleSnapshot{StartDate: date(2025, 1, 1)}
	projection := []models.GrowthProjectionPoint{{Day: 100, WeightGrams: 3000}}

	outcome, err := evaluator.Evaluate(tmpl, snapshot, projection)
	if err != nil {
		t.Fatalf("horizon exhaustion must not be an error, got %v", err)
	}
	if outcome.Due {
		t.Fatal("expected not-due outcome when projection never reaches threshold")
	}
}

func TestEvaluateStageTransition(t *testing.T) {
	now := date(2025, 6, 10)
	evaluator := NewEvaluatorAt(fixedClock(now))
	tmpl := models.ActivityTemplate{
		Name:         "transfer at smolt",
		ActivityType: models.ActivityTransfer,
		TriggerType:  models.TriggerStageTransition,
		TargetStage:  strPtr("SMOLT"),
	}

	waiting := models.BatchLifecycleSnapshot{StartDate: date(2025, 1, 1), CurrentStage: "PARR"}
	outcome, err := evaluator.Evaluate(tmpl, waiting, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Due {
		t.Fatal("expected not due while batch is in an earlier stage")
	}

	entered := models.BatchLifecycleSnapshot{StartDate: date(2025, 1, 1), CurrentStage: "SMOLT"}
	outcome, err = evaluator.Evaluate(tmpl, entered, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Due {
		t.Fatal("expected due once batch entered target stage")
	}
	if !outcome.DueDate.Equal(now) {
		t.Fatalf("due date = %s, want %s", outcome.DueDate, now)
	}
}

func TestEvaluateRejectsMalformedTemplate(t *testing.T) {
	evaluator := NewEvaluator()
	tmpl := models.ActivityTemplate{
		Name:         "broken",
		ActivityType: models.ActivityVaccination,
		TriggerType:  models.TriggerDayOffset,
		// day_offset missing, weight set instead
		WeightThresholdGrams: floatPtr(100),
	}

	_, err := evaluator.Evaluate(tmpl, models.BatchLifecycleSnapshot{StartDate: date(2025, 1, 1)}, nil)
	if !errors.Is(err, models.ErrInvalidTrigger) {
		t.Fatalf("expected ErrInvalidTrigger, got %v", err)
	}
}
