package models

import "time"

// BatchLifecycleSnapshot is the read-only view of a batch served by the Batch
// Registry; it is consumed as trigger-evaluation input only.
type BatchLifecycleSnapshot struct {
	BatchID       string    `json:"batch_id"`
	BatchNumber   string    `json:"batch_number"`
	StartDate     time.Time `json:"start_date"`
	CurrentStage  string    `json:"current_stage"`
	CurrentWeight *float64  `json:"current_weight_g"`
	Population    *int      `json:"population"`
	DayInCycle    int       `json:"day_in_cycle"`
}

// GrowthProjectionPoint is one day of a batch's projected growth curve.
type GrowthProjectionPoint struct {
	Day         int     `json:"day"`
	WeightGrams float64 `json:"weight_g"`
}
