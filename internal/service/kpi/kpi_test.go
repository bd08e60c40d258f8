package kpi

import (
	"math"
	"testing"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestAverageWeightGrams(t *testing.T) {
	if got := AverageWeightGrams(f(500), i(1000)); got == nil || *got != 500 {
		t.Fatalf("expected 500g average, got %v", got)
	}
	if got := AverageWeightGrams(f(500), i(0)); got != nil {
		t.Fatalf("expected nil for zero population, got %v", *got)
	}
	if got := AverageWeightGrams(nil, i(1000)); got != nil {
		t.Fatalf("expected nil for missing biomass, got %v", *got)
	}
	if got := AverageWeightGrams(f(500), nil); got != nil {
		t.Fatalf("expected nil for missing population, got %v", *got)
	}
}

func TestMortalityPercentage(t *testing.T) {
	if got := MortalityPercentage(i(50), i(10000), nil); got == nil || *got != 0.5 {
		t.Fatalf("expected 0.5%%, got %v", got)
	}
	// Previous population takes precedence when available.
	if got := MortalityPercentage(i(50), i(9950), i(10000)); got == nil || *got != 0.5 {
		t.Fatalf("expected 0.5%% against previous population, got %v", got)
	}
	if got := MortalityPercentage(i(50), i(0), nil); got != nil {
		t.Fatalf("expected nil for zero base population, got %v", *got)
	}
	if got := MortalityPercentage(nil, i(10000), nil); got != nil {
		t.Fatalf("expected nil for missing count, got %v", *got)
	}
}

func TestFCR(t *testing.T) {
	if got := FCR(f(1200), f(1000)); got == nil || *got != 1.2 {
		t.Fatalf("expected FCR 1.2, got %v", got)
	}
	if got := FCR(f(1200), f(0)); got != nil {
		t.Fatalf("expected nil for zero gain, got %v", *got)
	}
}

func TestTGC(t *testing.T) {
	got := TGC(f(500), f(50), f(10), f(100))
	if got == nil || *got <= 0 {
		t.Fatalf("expected positive TGC, got %v", got)
	}

	expected := (math.Cbrt(500) - math.Cbrt(50)) / (10 * 100) * 1000
	if math.Abs(*got-expected) > 1e-9 {
		t.Fatalf("TGC = %f, want %f", *got, expected)
	}

	if TGC(f(500), f(50), f(0), f(100)) != nil {
		t.Fatal("expected nil for zero temperature")
	}
	if TGC(f(500), f(50), f(10), f(0)) != nil {
		t.Fatal("expected nil for zero days")
	}
	if TGC(nil, f(50), f(10), f(100)) != nil {
		t.Fatal("expected nil for missing final weight")
	}
}

func TestSGR(t *testing.T) {
	got := SGR(f(200), f(100), f(30))
	if got == nil {
		t.Fatal("expected SGR value")
	}
	expected := (math.Log(200) - math.Log(100)) / 30 * 100
	if math.Abs(*got-expected) > 1e-9 {
		t.Fatalf("SGR = %f, want %f", *got, expected)
	}

	if SGR(f(0), f(100), f(30)) != nil {
		t.Fatal("expected nil for non-positive final weight")
	}
	if SGR(f(200), f(100), f(0)) != nil {
		t.Fatal("expected nil for zero days")
	}
}

func TestMargins(t *testing.T) {
	if got := GrossMargin(f(1000), f(600)); got == nil || *got != 400 {
		t.Fatalf("expected margin 400, got %v", got)
	}
	if got := GrossMarginPercentage(f(1000), f(600)); got == nil || *got != 40 {
		t.Fatalf("expected margin 40%%, got %v", got)
	}
	if GrossMarginPercentage(f(0), f(600)) != nil {
		t.Fatal("expected nil margin pct for zero revenue")
	}
	if got := ROI(f(200), f(1000)); got == nil || *got != 20 {
		t.Fatalf("expected ROI 20%%, got %v", got)
	}
	if ROI(f(200), f(0)) != nil {
		t.Fatal("expected nil ROI for zero investment")
	}
}

func TestCalculateTrend(t *testing.T) {
	up := CalculateTrend(f(110), f(100))
	if up == nil || up.Direction != models.TrendUp || math.Abs(up.Percentage-10) > 1e-9 {
		t.Fatalf("expected up 10%%, got %+v", up)
	}

	down := CalculateTrend(f(90), f(100))
	if down == nil || down.Direction != models.TrendDown {
		t.Fatalf("expected down trend, got %+v", down)
	}

	stable := CalculateTrend(f(100.5), f(100))
	if stable == nil || stable.Direction != models.TrendStable {
		t.Fatalf("expected stable for sub-1%% move, got %+v", stable)
	}

	if CalculateTrend(f(100), f(0)) != nil {
		t.Fatal("expected nil trend for zero previous value")
	}
	if CalculateTrend(nil, f(100)) != nil {
		t.Fatal("expected nil trend for missing current value")
	}

	// Negative previous values use the magnitude as the base.
	neg := CalculateTrend(f(-90), f(-100))
	if neg == nil || neg.Direction != models.TrendUp || math.Abs(neg.Percentage-10) > 1e-9 {
		t.Fatalf("expected up 10%% from negative base, got %+v", neg)
	}
}

func TestWeightedAverage(t *testing.T) {
	items := []models.WeightedValue{
		{Value: 1.0, Weight: 1000},
		{Value: 1.5, Weight: 3000},
	}
	got := WeightedAverage(items)
	if got == nil || math.Abs(*got-1.375) > 1e-9 {
		t.Fatalf("expected weighted average 1.375, got %v", got)
	}

	if WeightedAverage(nil) != nil {
		t.Fatal("expected nil for empty list")
	}
	if WeightedAverage([]models.WeightedValue{{Value: 1, Weight: 0}}) != nil {
		t.Fatal("expected nil for zero total weight")
	}
}

func TestAggregateFacilityMetrics(t *testing.T) {
	got := AggregateFacilityMetrics([]models.FacilityMetrics{
		{BiomassKg: f(1000), Population: nil, FCR: nil},
	})
	if got.TotalBiomassKg != 1000 {
		t.Fatalf("expected biomass 1000, got %f", got.TotalBiomassKg)
	}
	if got.TotalPopulation != 0 {
		t.Fatalf("expected population 0, got %d", got.TotalPopulation)
	}
	if got.AverageFCR != nil {
		t.Fatalf("expected nil average FCR when no facility contributed one, got %v", *got.AverageFCR)
	}
}

func TestAggregateFacilityMetricsSkipsNilEntries(t *testing.T) {
	got := AggregateFacilityMetrics([]models.FacilityMetrics{
		{BiomassKg: f(1000), Population: i(10000), FCR: f(1.1), TGC: f(3.0), MatureLice: f(0.1)},
		{BiomassKg: f(500), Population: i(5000), FCR: nil, TGC: f(2.0)},
		{},
	})

	if got.TotalBiomassKg != 1500 || got.TotalPopulation != 15000 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	// FCR averages over the single reporting facility, not all three.
	if got.AverageFCR == nil || *got.AverageFCR != 1.1 {
		t.Fatalf("expected average FCR 1.1, got %v", got.AverageFCR)
	}
	if got.AverageTGC == nil || *got.AverageTGC != 2.5 {
		t.Fatalf("expected average TGC 2.5, got %v", got.AverageTGC)
	}
	if got.AverageMatureLice == nil || *got.AverageMatureLice != 0.1 {
		t.Fatalf("expected average mature lice 0.1, got %v", got.AverageMatureLice)
	}
	if got.AverageMovableLice != nil {
		t.Fatal("expected nil movable lice average")
	}
}
