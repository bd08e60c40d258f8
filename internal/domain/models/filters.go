package models

import "time"

// ActivityFilters is the transient query state for one activity view. An empty
// dimension imposes no constraint; populated dimensions combine conjunctively.
type ActivityFilters struct {
	ActivityTypes []ActivityType   `json:"activity_types"`
	Statuses      []ActivityStatus `json:"statuses"`
	BatchIDs      []string         `json:"batches"`
	DateFrom      *time.Time       `json:"date_from,omitempty"`
	DateTo        *time.Time       `json:"date_to,omitempty"`
	OverdueOnly   bool             `json:"overdue_only"`
}

// ActivityKPIs are the dashboard counters computed over the full activity set.
type ActivityKPIs struct {
	Upcoming  int `json:"upcoming"`
	Overdue   int `json:"overdue"`
	ThisMonth int `json:"this_month"`
	Completed int `json:"completed"`
}

// BatchActivityGroup holds one batch's activities for the timeline view.
type BatchActivityGroup struct {
	BatchID     string            `json:"batch_id"`
	BatchNumber string            `json:"batch_number"`
	Activities  []PlannedActivity `json:"activities"`
}
