package fleet

import (
	"context"
	"errors"
	"testing"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

type fakeSource struct {
	metrics map[string]models.FacilityMetrics
	errs    map[string]error
}

func (s *fakeSource) GetFacilityMetrics(_ context.Context, facilityID string) (models.FacilityMetrics, error) {
	if err, ok := s.errs[facilityID]; ok {
		return models.FacilityMetrics{}, err
	}
	return s.metrics[facilityID], nil
}

func TestSummarize(t *testing.T) {
	source := &fakeSource{metrics: map[string]models.FacilityMetrics{
		"fac-1": {FacilityID: "fac-1", BiomassKg: f(1000), Population: i(10000), FCR: f(1.0), MatureLice: f(0.1)},
		"fac-2": {FacilityID: "fac-2", BiomassKg: f(2000), Population: i(20000), FCR: f(1.1), MatureLice: f(0.1)},
	}}

	summary, err := NewService(source, nil).Summarize(context.Background(), []string{"fac-1", "fac-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Aggregate.TotalBiomassKg != 3000 {
		t.Errorf("biomass = %f, want 3000", summary.Aggregate.TotalBiomassKg)
	}
	if summary.Aggregate.TotalPopulation != 30000 {
		t.Errorf("population = %d, want 30000", summary.Aggregate.TotalPopulation)
	}
	if summary.Aggregate.AverageFCR == nil || *summary.Aggregate.AverageFCR != 1.05 {
		t.Errorf("average FCR = %v, want 1.05", summary.Aggregate.AverageFCR)
	}
	// Lice and FCR both well under their warning edges.
	if summary.Health != models.AlertSuccess {
		t.Errorf("health = %s, want success", summary.Health)
	}
	if len(summary.Failures) != 0 {
		t.Errorf("unexpected failures: %+v", summary.Failures)
	}
}

func TestSummarizeFailedFacilityBecomesPlaceholder(t *testing.T) {
	source := &fakeSource{
		metrics: map[string]models.FacilityMetrics{
			"fac-1": {FacilityID: "fac-1", BiomassKg: f(1000), Population: i(10000), FCR: f(1.1)},
		},
		errs: map[string]error{
			"fac-2": errors.New("connection refused"),
		},
	}

	summary, err := NewService(source, nil).Summarize(context.Background(), []string{"fac-1", "fac-2"})
	if err != nil {
		t.Fatalf("one bad facility must not fail the summary: %v", err)
	}

	if len(summary.Failures) != 1 || summary.Failures[0].FacilityID != "fac-2" {
		t.Fatalf("expected fac-2 failure recorded, got %+v", summary.Failures)
	}

	// The placeholder keeps the facility in the response, all metrics nil.
	if len(summary.Facilities) != 2 {
		t.Fatalf("expected 2 facility rows, got %d", len(summary.Facilities))
	}
	placeholder := summary.Facilities[1]
	if placeholder.FacilityID != "fac-2" || placeholder.BiomassKg != nil || placeholder.FCR != nil {
		t.Fatalf("expected all-nil placeholder for fac-2, got %+v", placeholder)
	}

	// Aggregate reflects only the reporting facility.
	if summary.Aggregate.TotalBiomassKg != 1000 {
		t.Errorf("biomass = %f, want 1000", summary.Aggregate.TotalBiomassKg)
	}
	if summary.Aggregate.AverageFCR == nil || *summary.Aggregate.AverageFCR != 1.1 {
		t.Errorf("average FCR = %v, want 1.1", summary.Aggregate.AverageFCR)
	}
}

func TestSummarizeAllFacilitiesFailed(t *testing.T) {
	source := &fakeSource{errs: map[string]error{
		"fac-1": errors.New("timeout"),
		"fac-2": errors.New("timeout"),
	}}

	summary, err := NewService(source, nil).Summarize(context.Background(), []string{"fac-1", "fac-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(summary.Failures) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(summary.Failures))
	}
	if summary.Aggregate.TotalBiomassKg != 0 || summary.Aggregate.AverageFCR != nil {
		t.Fatalf("expected empty aggregate, got %+v", summary.Aggregate)
	}
	// Nothing reported anything, so the composite defaults to the no-data level.
	if summary.Health != models.AlertInfo {
		t.Errorf("health = %s, want info", summary.Health)
	}
}

func TestSummarizeNoFacilities(t *testing.T) {
	summary, err := NewService(&fakeSource{}, nil).Summarize(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Facilities) != 0 || len(summary.Failures) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}
