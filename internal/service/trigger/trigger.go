// Package trigger derives planned-activity due dates from activity templates.
package trigger

import (
	"fmt"
	"sort"
	"time"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

// Outcome is the result of evaluating one template against one batch. Due is
// false when the trigger condition has not (or will never) become due inside
// the available horizon; that is an explicit outcome, not an error.
type Outcome struct {
	Due       bool
	DueDate   time.Time
	Rationale string
}

// Evaluator decides due dates for the three trigger kinds.
type Evaluator struct {
	now func() time.Time
}

// NewEvaluator builds an evaluator using the wall clock.
func NewEvaluator() *Evaluator {
	return &Evaluator{now: time.Now}
}

// NewEvaluatorAt builds an evaluator with an injected clock, for tests and
// replays.
func NewEvaluatorAt(now func() time.Time) *Evaluator {
	return &Evaluator{now: now}
}

// Evaluate maps a template onto a batch's lifecycle timeline. Malformed
// templates are rejected before any trigger logic runs; they should have been
// refused at create time, so hitting this path indicates stale data.
func (e *Evaluator) Evaluate(tmpl models.ActivityTemplate, snapshot models.BatchLifecycleSnapshot, projection []models.GrowthProjectionPoint) (Outcome, error) {
	if err := tmpl.Validate(); err != nil {
		return Outcome{}, fmt.Errorf("evaluate template %q: %w", tmpl.Name, err)
	}

	switch tmpl.TriggerType {
	case models.TriggerDayOffset:
		return e.evaluateDayOffset(tmpl, snapshot), nil
	case models.TriggerWeightThreshold:
		return e.evaluateWeightThreshold(tmpl, snapshot, projection), nil
	case models.TriggerStageTransition:
		return e.evaluateStageTransition(tmpl, snapshot), nil
	}

	return Outcome{}, fmt.Errorf("evaluate template %q: unknown trigger type %q", tmpl.Name, tmpl.TriggerType)
}

// evaluateDayOffset is deterministic: start date plus the configured offset,
// fixed once at batch creation.
func (e *Evaluator) evaluateDayOffset(tmpl models.ActivityTemplate, snapshot models.BatchLifecycleSnapshot) Outcome {
	due := models.DateOnly(snapshot.StartDate).AddDate(0, 0, *tmpl.DayOffset)
	return Outcome{
		Due:       true,
		DueDate:   due,
		Rationale: fmt.Sprintf("day %d after batch start %s", *tmpl.DayOffset, snapshot.StartDate.Format("2006-01-02")),
	}
}

// evaluateWeightThreshold finds the first projected day at or above the
// threshold. A curve that never reaches it yields a not-due outcome.
func (e *Evaluator) evaluateWeightThreshold(tmpl models.ActivityTemplate, snapshot models.BatchLifecycleSnapshot, projection []models.GrowthProjectionPoint) Outcome {
	threshold := *tmpl.WeightThresholdGrams

	points := make([]models.GrowthProjectionPoint, len(projection))
	copy(points, projection)
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })

	for _, point := range points {
		if point.WeightGrams >= threshold {
			due := models.DateOnly(snapshot.StartDate).AddDate(0, 0, point.Day)
			return Outcome{
				Due:     true,
				DueDate: due,
				Rationale: fmt.Sprintf("projected %.0fg on day %d reaches %.0fg threshold",
					point.WeightGrams, point.Day, threshold),
			}
		}
	}

	return Outcome{
		Rationale: fmt.Sprintf("projection horizon (%d points) never reaches %.0fg", len(points), threshold),
	}
}

// evaluateStageTransition becomes due the day the registry reports the batch
// inside the target stage. Unlike day offsets this is re-evaluated as the
// batch progresses.
func (e *Evaluator) evaluateStageTransition(tmpl models.ActivityTemplate, snapshot models.BatchLifecycleSnapshot) Outcome {
	target := *tmpl.TargetStage
	if snapshot.CurrentStage != target {
		return Outcome{
			Rationale: fmt.Sprintf("batch is in stage %q, waiting for %q", snapshot.CurrentStage, target),
		}
	}

	return Outcome{
		Due:       true,
		DueDate:   models.DateOnly(e.now()),
		Rationale: fmt.Sprintf("batch entered stage %q", target),
	}
}
