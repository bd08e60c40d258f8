// Package fleet aggregates per-facility metrics across the whole operation.
package fleet

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
	"github.com/aquarian247/aquamind-planning/internal/service/alerts"
	"github.com/aquarian247/aquamind-planning/internal/service/kpi"
)

const defaultFetchLimit = 8

// MetricsSource serves one facility's metric snapshot.
type MetricsSource interface {
	GetFacilityMetrics(ctx context.Context, facilityID string) (models.FacilityMetrics, error)
}

// FacilityFailure records a facility whose fetch failed during fan-out. The
// facility still contributes an all-nil placeholder to the aggregate.
type FacilityFailure struct {
	FacilityID string `json:"facility_id"`
	Error      string `json:"error"`
}

// Summary is the joined result of a fleet-wide aggregation.
type Summary struct {
	Aggregate  models.FacilityAggregate `json:"aggregate"`
	Health     models.AlertLevel        `json:"health"`
	Facilities []models.FacilityMetrics `json:"facilities"`
	Failures   []FacilityFailure        `json:"failures,omitempty"`
}

// Service fans out facility reads in parallel and reduces them.
type Service struct {
	source MetricsSource
	logger *zap.Logger
	limit  int
}

// NewService wires a fleet aggregation service.
func NewService(source MetricsSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger, limit: defaultFetchLimit}
}

// Summarize fetches every facility concurrently and joins the results. One
// facility failing never aborts the rest: the failed facility is substituted
// with a no-data placeholder and reported in Failures alongside the summary.
func (s *Service) Summarize(ctx context.Context, facilityIDs []string) (Summary, error) {
	results := make([]models.FacilityMetrics, len(facilityIDs))

	var mu sync.Mutex
	var failures []FacilityFailure

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.limit)

	for i, facilityID := range facilityIDs {
		i, facilityID := i, facilityID
		g.Go(func() error {
			metrics, err := s.source.GetFacilityMetrics(gctx, facilityID)
			if err != nil {
				s.logger.Warn("facility fetch failed, substituting placeholder",
					zap.String("facility", facilityID), zap.Error(err))
				mu.Lock()
				failures = append(failures, FacilityFailure{FacilityID: facilityID, Error: err.Error()})
				mu.Unlock()
				results[i] = models.FacilityMetrics{FacilityID: facilityID}
				return nil
			}
			results[i] = metrics
			return nil
		})
	}

	// Fetch errors are captured as failures above, never returned, so a
	// single bad facility cannot abort the join.
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	aggregate := kpi.AggregateFacilityMetrics(results)
	health := alerts.FacilityHealth(
		aggregate.AverageMatureLice,
		aggregate.AverageMovableLice,
		nil,
		aggregate.AverageFCR,
	)

	return Summary{
		Aggregate:  aggregate,
		Health:     health,
		Facilities: results,
		Failures:   failures,
	}, nil
}
