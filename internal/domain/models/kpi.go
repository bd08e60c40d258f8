package models

// FacilityMetrics is one facility's biological metric snapshot. Nil fields
// mean the facility reported no data for that metric.
type FacilityMetrics struct {
	FacilityID     string   `json:"facility_id"`
	BiomassKg      *float64 `json:"biomass_kg"`
	Population     *int     `json:"population"`
	FCR            *float64 `json:"fcr"`
	TGC            *float64 `json:"tgc"`
	MortalityCount *int     `json:"mortality_count"`
	MatureLice     *float64 `json:"mature_lice"`
	MovableLice    *float64 `json:"movable_lice"`
}

// FacilityAggregate is the reduction of many facility snapshots: sums for
// biomass and population, arithmetic means over the non-nil entries for the
// rate metrics.
type FacilityAggregate struct {
	TotalBiomassKg     float64  `json:"total_biomass_kg"`
	TotalPopulation    int      `json:"total_population"`
	AverageFCR         *float64 `json:"average_fcr"`
	AverageTGC         *float64 `json:"average_tgc"`
	AverageMatureLice  *float64 `json:"average_mature_lice"`
	AverageMovableLice *float64 `json:"average_movable_lice"`
}

// Trend is the period-over-period movement of a KPI value.
type Trend struct {
	Direction  TrendDirection `json:"direction"`
	Percentage float64        `json:"percentage"`
}

// WeightedValue pairs a metric value with its weight for weighted averaging,
// e.g. FCR weighted by biomass across batches.
type WeightedValue struct {
	Value  float64 `json:"value"`
	Weight float64 `json:"weight"`
}
