package models

// ActivityType enumerates the production activity categories a template or
// planned activity can carry.
type ActivityType string

const (
	ActivityVaccination ActivityType = "VACCINATION"
	ActivityTreatment   ActivityType = "TREATMENT"
	ActivityCull        ActivityType = "CULL"
	ActivityHarvest     ActivityType = "HARVEST"
	ActivitySale        ActivityType = "SALE"
	ActivityFeedChange  ActivityType = "FEED_CHANGE"
	ActivityTransfer    ActivityType = "TRANSFER"
	ActivityMaintenance ActivityType = "MAINTENANCE"
	ActivitySampling    ActivityType = "SAMPLING"
	ActivityOther       ActivityType = "OTHER"
)

// ActivityTypes lists every supported activity type in display order.
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityVaccination,
		ActivityTreatment,
		ActivityCull,
		ActivityHarvest,
		ActivitySale,
		ActivityFeedChange,
		ActivityTransfer,
		ActivityMaintenance,
		ActivitySampling,
		ActivityOther,
	}
}

// Valid reports whether the activity type is one of the known values.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityVaccination, ActivityTreatment, ActivityCull, ActivityHarvest,
		ActivitySale, ActivityFeedChange, ActivityTransfer, ActivityMaintenance,
		ActivitySampling, ActivityOther:
		return true
	}
	return false
}

// DisplayName returns the human-readable label for the activity type.
func (t ActivityType) DisplayName() string {
	switch t {
	case ActivityVaccination:
		return "Vaccination"
	case ActivityTreatment:
		return "Treatment"
	case ActivityCull:
		return "Culling"
	case ActivityHarvest:
		return "Harvest"
	case ActivitySale:
		return "Sale"
	case ActivityFeedChange:
		return "Feed Change"
	case ActivityTransfer:
		return "Transfer"
	case ActivityMaintenance:
		return "Maintenance"
	case ActivitySampling:
		return "Sampling"
	case ActivityOther:
		return "Other"
	}
	return string(t)
}

// Color returns the fixed hex color used for timeline rendering. HARVEST and
// SALE are deliberately distinct shades of green.
func (t ActivityType) Color() string {
	switch t {
	case ActivityVaccination:
		return "#3b82f6"
	case ActivityTreatment:
		return "#ef4444"
	case ActivityCull:
		return "#f97316"
	case ActivityHarvest:
		return "#16a34a"
	case ActivitySale:
		return "#22c55e"
	case ActivityFeedChange:
		return "#eab308"
	case ActivityTransfer:
		return "#8b5cf6"
	case ActivityMaintenance:
		return "#64748b"
	case ActivitySampling:
		return "#06b6d4"
	case ActivityOther:
		return "#a8a29e"
	}
	return "#64748b"
}

// ActivityStatus enumerates the planned activity lifecycle states.
type ActivityStatus string

const (
	StatusPending    ActivityStatus = "PENDING"
	StatusInProgress ActivityStatus = "IN_PROGRESS"
	StatusCompleted  ActivityStatus = "COMPLETED"
	StatusCancelled  ActivityStatus = "CANCELLED"
)

// Valid reports whether the status is one of the known values.
func (s ActivityStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
func (s ActivityStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// TriggerType enumerates how an activity template decides its due date.
type TriggerType string

const (
	TriggerDayOffset       TriggerType = "DAY_OFFSET"
	TriggerWeightThreshold TriggerType = "WEIGHT_THRESHOLD"
	TriggerStageTransition TriggerType = "STAGE_TRANSITION"
)

// Valid reports whether the trigger type is one of the known values.
func (t TriggerType) Valid() bool {
	switch t {
	case TriggerDayOffset, TriggerWeightThreshold, TriggerStageTransition:
		return true
	}
	return false
}

// DisplayName returns the human-readable label for the trigger type.
func (t TriggerType) DisplayName() string {
	switch t {
	case TriggerDayOffset:
		return "Day Offset"
	case TriggerWeightThreshold:
		return "Weight Threshold"
	case TriggerStageTransition:
		return "Stage Transition"
	}
	return string(t)
}

// AlertLevel is the four-level severity scale used across dashboards.
// Capacity utilization intentionally ranks warning above info even though
// info elsewhere means "no data"; kept as-is pending product review.
type AlertLevel string

const (
	AlertSuccess AlertLevel = "success"
	AlertWarning AlertLevel = "warning"
	AlertDanger  AlertLevel = "danger"
	AlertInfo    AlertLevel = "info"
)

// Label returns the human-readable label for the alert level.
func (l AlertLevel) Label() string {
	switch l {
	case AlertSuccess:
		return "Good"
	case AlertWarning:
		return "Caution"
	case AlertDanger:
		return "Critical"
	case AlertInfo:
		return "N/A"
	}
	return string(l)
}

// TrendDirection describes period-over-period movement of a KPI.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)
