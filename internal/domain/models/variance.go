package models

import "time"

// VarianceClass buckets how far actual execution drifted from plan.
type VarianceClass string

const (
	VarianceOnTime     VarianceClass = "on_time"
	VarianceAcceptable VarianceClass = "acceptable"
	VarianceLate       VarianceClass = "late"
)

// VarianceRecord compares one activity's planned due date against its actual
// completion. Derived on demand, never persisted independently.
type VarianceRecord struct {
	ActivityID   string        `json:"activity_id"`
	BatchNumber  string        `json:"batch_number"`
	ActivityType ActivityType  `json:"activity_type"`
	PlannedDue   time.Time     `json:"planned_due_date"`
	CompletedAt  time.Time     `json:"actual_completion_date"`
	VarianceDays int           `json:"variance_days"`
	Class        VarianceClass `json:"classification"`
}

// FCRBand carries the semantic class and fixed presentation color for an FCR
// value so results are stable regardless of caller.
type FCRBand struct {
	Status string `json:"status"`
	Color  string `json:"color"`
}
