// Package scheduler runs the recurring planning jobs.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/aquarian247/aquamind-planning/internal/config"
	"github.com/aquarian247/aquamind-planning/internal/repository/mongodb"
	"github.com/aquarian247/aquamind-planning/internal/repository/sheets"
	"github.com/aquarian247/aquamind-planning/internal/service/planner"
	"github.com/aquarian247/aquamind-planning/internal/service/variance"
)

// Scheduler manages the recurring planning jobs: daily trigger re-evaluation
// and the weekly variance export.
type Scheduler struct {
	cron       *cron.Cron
	plannerSvc *planner.Service
	reporter   *variance.Reporter
	repo       mongodb.Repository
	exporter   sheets.Exporter
	cfg        config.PlannerConfig
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance. The exporter may be nil when
// the sheets export is not configured.
func NewScheduler(cfg config.PlannerConfig, plannerSvc *planner.Service, reporter *variance.Reporter, repo mongodb.Repository, exporter sheets.Exporter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:       cron.New(),
		plannerSvc: plannerSvc,
		reporter:   reporter,
		repo:       repo,
		exporter:   exporter,
		cfg:        cfg,
		logger:     logger,
	}
}

// Start registers and starts the cron jobs.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("materialize_cron", s.cfg.MaterializeCron),
		zap.String("variance_cron", s.cfg.VarianceCron))

	if _, err := s.cron.AddFunc(s.cfg.MaterializeCron, s.reevaluateTriggers); err != nil {
		s.logger.Error("failed to schedule trigger re-evaluation", zap.Error(err))
	}

	if s.exporter != nil {
		if _, err := s.cron.AddFunc(s.cfg.VarianceCron, s.exportVariance); err != nil {
			s.logger.Error("failed to schedule variance export", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// reevaluateTriggers materializes activities for recent batches. Day offsets
// and satisfied weight thresholds are idempotent; stage transitions are the
// reason this runs daily.
func (s *Scheduler) reevaluateTriggers() {
	s.logger.Info("re-evaluating activity triggers")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	lookback := time.Duration(s.cfg.LookbackDays) * 24 * time.Hour
	if err := s.plannerSvc.ReevaluateRecentBatches(ctx, lookback); err != nil {
		s.logger.Error("trigger re-evaluation finished with errors", zap.Error(err))
	}
}

// exportVariance builds the current variance report and appends it to the
// configured spreadsheet.
func (s *Scheduler) exportVariance() {
	s.logger.Info("exporting variance report")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	activities, err := s.repo.ListActivities(ctx, "", "")
	if err != nil {
		s.logger.Error("failed to load activities for variance export", zap.Error(err))
		return
	}

	records := s.reporter.Build(activities)
	if len(records) == 0 {
		s.logger.Info("no completed activities to export")
		return
	}

	if err := s.exporter.AppendVarianceRows(ctx, records); err != nil {
		s.logger.Error("failed to export variance report", zap.Error(err))
		return
	}

	s.logger.Info("variance report exported", zap.Int("records", len(records)))
}
