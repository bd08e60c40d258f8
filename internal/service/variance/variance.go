// Package variance reconciles planned due dates against actual completions.
package variance

import (
	"go.uber.org/zap"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

// Reporter classifies planned-vs-actual deviation. GraceDays is the size of
// the "acceptable" band above zero days late; 0 keeps the strict two-band
// behavior.
type Reporter struct {
	graceDays int
	logger    *zap.Logger
}

// NewReporter builds a variance reporter with the configured grace band.
func NewReporter(graceDays int, logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if graceDays < 0 {
		graceDays = 0
	}
	return &Reporter{graceDays: graceDays, logger: logger}
}

// Build derives variance records for every activity carrying both a planned
// due date and an actual completion date. Activities without actuals are
// skipped, not reported as errors.
func (r *Reporter) Build(activities []models.PlannedActivity) []models.VarianceRecord {
	records := make([]models.VarianceRecord, 0, len(activities))

	for _, a := range activities {
		if a.CompletedAt == nil || a.DueDate.IsZero() {
			continue
		}

		planned := models.DateOnly(a.DueDate)
		actual := models.DateOnly(*a.CompletedAt)
		days := int(actual.Sub(planned).Hours() / 24)

		records = append(records, models.VarianceRecord{
			ActivityID:   a.ID,
			BatchNumber:  a.BatchNumber,
			ActivityType: a.ActivityType,
			PlannedDue:   planned,
			CompletedAt:  actual,
			VarianceDays: days,
			Class:        r.Classify(days),
		})
	}

	r.logger.Debug("variance report built",
		zap.Int("activities", len(activities)), zap.Int("records", len(records)))
	return records
}

// Classify buckets a day deviation: at or before the due date is on-time,
// then the grace band, then late.
func (r *Reporter) Classify(varianceDays int) models.VarianceClass {
	switch {
	case varianceDays <= 0:
		return models.VarianceOnTime
	case varianceDays <= r.graceDays:
		return models.VarianceAcceptable
	default:
		return models.VarianceLate
	}
}

// FCRStatus maps an actual FCR onto the fixed three-band display scale. The
// band edges (1.2 and 1.5) are inclusive on the lower side.
func FCRStatus(fcr *float64) models.FCRBand {
	if fcr == nil {
		return models.FCRBand{Status: "no data", Color: "#9ca3af"}
	}

	switch {
	case *fcr <= 1.2:
		return models.FCRBand{Status: "excellent", Color: "#16a34a"}
	case *fcr <= 1.5:
		return models.FCRBand{Status: "acceptable", Color: "#ca8a04"}
	default:
		return models.FCRBand{Status: "poor", Color: "#dc2626"}
	}
}
