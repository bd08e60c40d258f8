// Package planner materializes planned activities for batches from the active
// activity templates.
package planner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
	"github.com/aquarian247/aquamind-planning/internal/service/trigger"
)

// TemplateStore lists the activity templates considered for materialization.
type TemplateStore interface {
	ListTemplates(ctx context.Context, onlyActive bool) ([]models.ActivityTemplate, error)
}

// ActivityStore persists materialized activities.
type ActivityStore interface {
	ListActivitiesByBatch(ctx context.Context, batchID string) ([]models.PlannedActivity, error)
	CreateActivities(ctx context.Context, activities []models.PlannedActivity) error
}

// BatchRegistry serves lifecycle snapshots for trigger evaluation.
type BatchRegistry interface {
	GetLifecycleSnapshot(ctx context.Context, batchID string) (models.BatchLifecycleSnapshot, error)
	ListRecentBatches(ctx context.Context, since time.Time) ([]models.BatchLifecycleSnapshot, error)
}

// ProjectionSource serves growth curves for weight-threshold triggers.
type ProjectionSource interface {
	GetGrowthProjection(ctx context.Context, batchID string) ([]models.GrowthProjectionPoint, error)
}

// Service turns active templates into planned-activity rows. Deactivating a
// template only stops future materialization; rows already written stay put.
type Service struct {
	templates   TemplateStore
	activities  ActivityStore
	registry    BatchRegistry
	projections ProjectionSource
	evaluator   *trigger.Evaluator
	logger      *zap.Logger
	now         func() time.Time
}

// NewService wires a planner service instance.
func NewService(templates TemplateStore, activities ActivityStore, registry BatchRegistry, projections ProjectionSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		templates:   templates,
		activities:  activities,
		registry:    registry,
		projections: projections,
		evaluator:   trigger.NewEvaluator(),
		logger:      logger,
		now:         time.Now,
	}
}

// MaterializeForBatch evaluates every active template against the batch and
// writes the activities that came due. Templates that already produced a row
// for this batch are skipped, so the call is safe to repeat; the scheduler
// relies on that to pick up stage transitions as the batch progresses.
func (s *Service) MaterializeForBatch(ctx context.Context, batchID, createdBy string) (int, error) {
	snapshot, err := s.registry.GetLifecycleSnapshot(ctx, batchID)
	if err != nil {
		return 0, fmt.Errorf("load lifecycle snapshot for batch %s: %w", batchID, err)
	}

	templates, err := s.templates.ListTemplates(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("load active templates: %w", err)
	}
	if len(templates) == 0 {
		return 0, nil
	}

	existing, err := s.activities.ListActivitiesByBatch(ctx, batchID)
	if err != nil {
		return 0, fmt.Errorf("load existing activities for batch %s: %w", batchID, err)
	}
	materialized := make(map[string]bool, len(existing))
	for _, activity := range existing {
		if activity.TemplateID != "" {
			materialized[activity.TemplateID] = true
		}
	}

	var projection []models.GrowthProjectionPoint
	if needsProjection(templates) {
		projection, err = s.projections.GetGrowthProjection(ctx, batchID)
		if err != nil {
			return 0, fmt.Errorf("load growth projection for batch %s: %w", batchID, err)
		}
	}

	now := s.now().UTC()
	var rows []models.PlannedActivity

	for _, tmpl := range templates {
		if materialized[tmpl.ID] {
			continue
		}

		outcome, err := s.evaluator.Evaluate(tmpl, snapshot, projection)
		if err != nil {
			s.logger.Warn("skipping template with invalid trigger",
				zap.String("template", tmpl.Name), zap.Error(err))
			continue
		}
		if !outcome.Due {
			s.logger.Debug("template not yet due",
				zap.String("template", tmpl.Name),
				zap.String("batch", batchID),
				zap.String("rationale", outcome.Rationale))
			continue
		}

		notes := tmpl.NotesTemplate
		if notes == "" {
			notes = outcome.Rationale
		}

		rows = append(rows, models.PlannedActivity{
			BatchID:      batchID,
			BatchNumber:  snapshot.BatchNumber,
			TemplateID:   tmpl.ID,
			ActivityType: tmpl.ActivityType,
			DueDate:      outcome.DueDate,
			Status:       models.StatusPending,
			Notes:        notes,
			CreatedBy:    createdBy,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}

	if len(rows) == 0 {
		return 0, nil
	}

	if err := s.activities.CreateActivities(ctx, rows); err != nil {
		return 0, fmt.Errorf("persist %d activities for batch %s: %w", len(rows), batchID, err)
	}

	s.logger.Info("materialized planned activities",
		zap.String("batch", batchID), zap.Int("count", len(rows)))
	return len(rows), nil
}

// ReevaluateRecentBatches re-runs materialization over batches started within
// the lookback window. Day offsets and satisfied weight thresholds are
// already materialized and skipped; this exists for stage transitions, which
// only come due once the registry reports the batch inside the target stage.
func (s *Service) ReevaluateRecentBatches(ctx context.Context, lookback time.Duration) error {
	batches, err := s.registry.ListRecentBatches(ctx, s.now().Add(-lookback))
	if err != nil {
		return fmt.Errorf("list recent batches: %w", err)
	}

	var failed int
	for _, batch := range batches {
		if _, err := s.MaterializeForBatch(ctx, batch.BatchID, "scheduler"); err != nil {
			failed++
			s.logger.Error("re-evaluation failed for batch",
				zap.String("batch", batch.BatchID), zap.Error(err))
		}
	}

	if failed > 0 {
		return fmt.Errorf("re-evaluation failed for %d of %d batches", failed, len(batches))
	}
	return nil
}

func needsProjection(templates []models.ActivityTemplate) bool {
	for _, tmpl := range templates {
		if tmpl.TriggerType == models.TriggerWeightThreshold {
			return true
		}
	}
	return false
}
