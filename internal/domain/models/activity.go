package models

import (
	"encoding/json"
	"time"
)

// PlannedActivity is one concrete scheduled occurrence of an activity for a
// batch. Completion fields are written exactly once on the transition into
// COMPLETED and never change afterward.
type PlannedActivity struct {
	ID                 string         `bson:"_id,omitempty" json:"id"`
	ScenarioID         string         `bson:"scenario_id,omitempty" json:"scenario,omitempty"`
	BatchID            string         `bson:"batch_id" json:"batch"`
	BatchNumber        string         `bson:"batch_number" json:"batch_number"`
	TemplateID         string         `bson:"template_id,omitempty" json:"template,omitempty"`
	ActivityType       ActivityType   `bson:"activity_type" json:"activity_type"`
	DueDate            time.Time      `bson:"due_date" json:"due_date"`
	Status             ActivityStatus `bson:"status" json:"status"`
	ContainerID        string         `bson:"container_id,omitempty" json:"container,omitempty"`
	Notes              string         `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedBy          string         `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt          time.Time      `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time      `bson:"updated_at" json:"updated_at"`
	CompletedAt        *time.Time     `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CompletedBy        string         `bson:"completed_by,omitempty" json:"completed_by,omitempty"`
	TransferWorkflowID *string        `bson:"transfer_workflow,omitempty" json:"transfer_workflow,omitempty"`

	// Overdue carries the upstream-computed flag when the activity arrives
	// from the persistence API. Local evaluation uses IsOverdue instead.
	Overdue OverdueFlag `bson:"-" json:"is_overdue,omitempty"`
}

// EffectiveStatus treats a missing status as PENDING, matching how upstream
// rows without an explicit status are interpreted.
func (a PlannedActivity) EffectiveStatus() ActivityStatus {
	if a.Status == "" {
		return StatusPending
	}
	return a.Status
}

// IsOverdue reports whether the activity is past due and still actionable.
// It is a pure function of the activity and the supplied reference day.
func (a PlannedActivity) IsOverdue(today time.Time) bool {
	status := a.EffectiveStatus()
	if status != StatusPending && status != StatusInProgress {
		return false
	}
	return DateOnly(a.DueDate).Before(DateOnly(today))
}

// DateOnly truncates a timestamp to midnight UTC so due-date comparisons work
// at calendar-day granularity.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameMonth reports whether two timestamps fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.UTC().Date()
	by, bm, _ := b.UTC().Date()
	return ay == by && am == bm
}

// OverdueFlag normalizes the union-typed overdue marker sent by upstream
// serializers: boolean true/false, "true"/"false", or "1"/"0".
type OverdueFlag bool

// CoerceOverdue is the single total coercion point for raw overdue values.
// Anything other than boolean true, "true" or "1" is treated as false.
func CoerceOverdue(v any) bool {
	switch value := v.(type) {
	case bool:
		return value
	case string:
		return value == "true" || value == "1"
	}
	return false
}

// UnmarshalJSON accepts both boolean and string encodings of the flag.
func (f *OverdueFlag) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = OverdueFlag(CoerceOverdue(raw))
	return nil
}

// MarshalJSON always emits a plain boolean.
func (f OverdueFlag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// Bool unwraps the flag.
func (f OverdueFlag) Bool() bool {
	return bool(f)
}

// WorkflowRef identifies a transfer workflow spawned from a TRANSFER activity.
type WorkflowRef struct {
	ID          string `json:"id"`
	SourceStage string `json:"source_stage"`
	DestStage   string `json:"dest_stage"`
}
