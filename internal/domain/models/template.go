package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTrigger indicates a template whose trigger parameters do not match
// its trigger type. Such templates are rejected at create/update time and
// never reach the trigger evaluator.
var ErrInvalidTrigger = errors.New("trigger parameters do not match trigger type")

// ActivityTemplate is a reusable rule that materializes planned activities for
// newly created batches. Exactly one trigger parameter must be set, matching
// TriggerType; the other two must be nil.
type ActivityTemplate struct {
	ID                   string       `bson:"_id,omitempty" json:"id"`
	Name                 string       `bson:"name" json:"name"`
	ActivityType         ActivityType `bson:"activity_type" json:"activity_type"`
	TriggerType          TriggerType  `bson:"trigger_type" json:"trigger_type"`
	DayOffset            *int         `bson:"day_offset,omitempty" json:"day_offset,omitempty"`
	WeightThresholdGrams *float64     `bson:"weight_threshold_g,omitempty" json:"weight_threshold_g,omitempty"`
	TargetStage          *string      `bson:"target_lifecycle_stage,omitempty" json:"target_lifecycle_stage,omitempty"`
	NotesTemplate        string       `bson:"notes_template,omitempty" json:"notes_template,omitempty"`
	IsActive             bool         `bson:"is_active" json:"is_active"`
	CreatedAt            time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt            time.Time    `bson:"updated_at" json:"updated_at"`
}

// Validate enforces the exactly-one-trigger-parameter invariant.
func (t ActivityTemplate) Validate() error {
	if t.Name == "" {
		return errors.New("template name is required")
	}
	if !t.ActivityType.Valid() {
		return fmt.Errorf("unknown activity type %q", t.ActivityType)
	}
	if !t.TriggerType.Valid() {
		return fmt.Errorf("unknown trigger type %q", t.TriggerType)
	}

	switch t.TriggerType {
	case TriggerDayOffset:
		if t.DayOffset == nil || t.WeightThresholdGrams != nil || t.TargetStage != nil {
			return fmt.Errorf("%w: DAY_OFFSET requires day_offset only", ErrInvalidTrigger)
		}
		if *t.DayOffset < 0 {
			return fmt.Errorf("%w: day_offset must be >= 0", ErrInvalidTrigger)
		}
	case TriggerWeightThreshold:
		if t.WeightThresholdGrams == nil || t.DayOffset != nil || t.TargetStage != nil {
			return fmt.Errorf("%w: WEIGHT_THRESHOLD requires weight_threshold_g only", ErrInvalidTrigger)
		}
		if *t.WeightThresholdGrams <= 0 {
			return fmt.Errorf("%w: weight_threshold_g must be > 0", ErrInvalidTrigger)
		}
	case TriggerStageTransition:
		if t.TargetStage == nil || t.DayOffset != nil || t.WeightThresholdGrams != nil {
			return fmt.Errorf("%w: STAGE_TRANSITION requires target_lifecycle_stage only", ErrInvalidTrigger)
		}
		if *t.TargetStage == "" {
			return fmt.Errorf("%w: target_lifecycle_stage must not be empty", ErrInvalidTrigger)
		}
	}

	return nil
}
