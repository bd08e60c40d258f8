package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/aquarian247/aquamind-planning/internal/config"
	"github.com/aquarian247/aquamind-planning/internal/repository/mongodb"
	"github.com/aquarian247/aquamind-planning/internal/repository/sheets"
	"github.com/aquarian247/aquamind-planning/internal/scheduler"
	"github.com/aquarian247/aquamind-planning/internal/server/handlers"
	"github.com/aquarian247/aquamind-planning/internal/server/router"
	fleetsvc "github.com/aquarian247/aquamind-planning/internal/service/fleet"
	plannersvc "github.com/aquarian247/aquamind-planning/internal/service/planner"
	"github.com/aquarian247/aquamind-planning/internal/service/variance"
	"github.com/aquarian247/aquamind-planning/pkg/clients/registry"
	"github.com/aquarian247/aquamind-planning/pkg/clients/scenario"
	"github.com/aquarian247/aquamind-planning/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	registryClient := registry.NewClient(cfg.Registry)
	scenarioClient := scenario.NewClient(cfg.Scenario)

	plannerService := plannersvc.NewService(mongoRepo, mongoRepo, registryClient, scenarioClient, baseLogger.Named("svc.planner"))
	fleetService := fleetsvc.NewService(registryClient, baseLogger.Named("svc.fleet"))
	varianceReporter := variance.NewReporter(cfg.Planner.VarianceGraceDays, baseLogger.Named("svc.variance"))

	// The sheets export only runs when credentials are configured.
	var varianceExporter sheets.Exporter
	if cfg.Sheets.CredentialsPath != "" {
		varianceExporter, err = sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		baseLogger.Info("variance sheets export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, variance export disabled")
	}

	plannerHandler := handlers.NewPlannerHandler(mongoRepo, plannerService, fleetService, varianceReporter, cfg.Planner.FacilityIDs, baseLogger.Named("handlers.planner"))
	engine := router.New(plannerHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Planner, plannerService, varianceReporter, mongoRepo, varianceExporter, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
