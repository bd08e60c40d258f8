// Package kpi holds the pure growth and efficiency calculators. Every
// function returns nil when a required input is nil or a denominator makes
// the division undefined; none of them panic or produce NaN/Inf.
package kpi

import (
	"math"

	"github.com/aquarian247/aquamind-planning/internal/domain/models"
)

// AverageWeightGrams converts total biomass and population into a mean fish
// weight in grams.
func AverageWeightGrams(totalBiomassKg *float64, totalPopulation *int) *float64 {
	if totalBiomassKg == nil || totalPopulation == nil || *totalPopulation == 0 {
		return nil
	}
	result := *totalBiomassKg * 1000 / float64(*totalPopulation)
	return &result
}

// MortalityPercentage computes mortality relative to the previous population
// when available, falling back to the current population.
func MortalityPercentage(mortalityCount, totalPopulation, previousPopulation *int) *float64 {
	if mortalityCount == nil || totalPopulation == nil {
		return nil
	}

	base := *totalPopulation
	if previousPopulation != nil && *previousPopulation != 0 {
		base = *previousPopulation
	}
	if base == 0 {
		return nil
	}

	result := float64(*mortalityCount) / float64(base) * 100
	return &result
}

// CapacityUtilization is the used/total capacity ratio as a percentage.
func CapacityUtilization(usedCapacity, totalCapacity *float64) *float64 {
	if usedCapacity == nil || totalCapacity == nil || *totalCapacity == 0 {
		return nil
	}
	result := *usedCapacity / *totalCapacity * 100
	return &result
}

// FCR is feed consumed divided by biomass gained.
func FCR(totalFeedKg, biomassGainKg *float64) *float64 {
	if totalFeedKg == nil || biomassGainKg == nil || *biomassGainKg == 0 {
		return nil
	}
	result := *totalFeedKg / *biomassGainKg
	return &result
}

// TGC is the thermal growth coefficient:
// (cbrt(final) - cbrt(initial)) / (temperature * days) * 1000.
func TGC(finalWeightG, initialWeightG, temperatureC, days *float64) *float64 {
	if finalWeightG == nil || initialWeightG == nil || temperatureC == nil || days == nil {
		return nil
	}
	if *temperatureC == 0 || *days == 0 {
		return nil
	}

	result := (math.Cbrt(*finalWeightG) - math.Cbrt(*initialWeightG)) / (*temperatureC * *days) * 1000
	return &result
}

// SGR is the specific growth rate percentage:
// (ln(final) - ln(initial)) / days * 100. Both weights must be positive.
func SGR(finalWeightG, initialWeightG, days *float64) *float64 {
	if finalWeightG == nil || initialWeightG == nil || days == nil {
		return nil
	}
	if *finalWeightG <= 0 || *initialWeightG <= 0 || *days == 0 {
		return nil
	}

	result := (math.Log(*finalWeightG) - math.Log(*initialWeightG)) / *days * 100
	return &result
}

// GrossMargin is revenue minus costs.
func GrossMargin(revenue, costs *float64) *float64 {
	if revenue == nil || costs == nil {
		return nil
	}
	result := *revenue - *costs
	return &result
}

// GrossMarginPercentage is margin relative to revenue.
func GrossMarginPercentage(revenue, costs *float64) *float64 {
	if revenue == nil || costs == nil || *revenue == 0 {
		return nil
	}
	result := (*revenue - *costs) / *revenue * 100
	return &result
}

// ROI is net profit relative to investment, as a percentage.
func ROI(netProfit, investment *float64) *float64 {
	if netProfit == nil || investment == nil || *investment == 0 {
		return nil
	}
	result := *netProfit / *investment * 100
	return &result
}

// CalculateTrend compares a current value against the previous period. Moves
// under one percent in either direction count as stable.
func CalculateTrend(current, previous *float64) *models.Trend {
	if current == nil || previous == nil || *previous == 0 {
		return nil
	}

	change := *current - *previous
	percentage := change / math.Abs(*previous) * 100

	direction := models.TrendStable
	switch {
	case math.Abs(percentage) < 1:
		direction = models.TrendStable
	case change > 0:
		direction = models.TrendUp
	default:
		direction = models.TrendDown
	}

	return &models.Trend{Direction: direction, Percentage: math.Abs(percentage)}
}

// WeightedAverage reduces value/weight pairs to a weighted mean, e.g. FCR
// weighted by biomass across batches.
func WeightedAverage(items []models.WeightedValue) *float64 {
	if len(items) == 0 {
		return nil
	}

	var totalValue, totalWeight float64
	for _, item := range items {
		totalValue += item.Value * item.Weight
		totalWeight += item.Weight
	}

	if totalWeight == 0 {
		return nil
	}
	result := totalValue / totalWeight
	return &result
}

// AggregateFacilityMetrics reduces per-facility snapshots into fleet totals.
// Biomass and population sum over the facilities that reported them; the rate
// metrics average over only the non-nil entries so a facility with no FCR
// never drags the mean toward zero.
func AggregateFacilityMetrics(facilities []models.FacilityMetrics) models.FacilityAggregate {
	var agg models.FacilityAggregate
	var fcrSum, tgcSum, matureSum, movableSum float64
	var fcrCount, tgcCount, matureCount, movableCount int

	for _, facility := range facilities {
		if facility.BiomassKg != nil {
			agg.TotalBiomassKg += *facility.BiomassKg
		}
		if facility.Population != nil {
			agg.TotalPopulation += *facility.Population
		}
		if facility.FCR != nil {
			fcrSum += *facility.FCR
			fcrCount++
		}
		if facility.TGC != nil {
			tgcSum += *facility.TGC
			tgcCount++
		}
		if facility.MatureLice != nil {
			matureSum += *facility.MatureLice
			matureCount++
		}
		if facility.MovableLice != nil {
			movableSum += *facility.MovableLice
			movableCount++
		}
	}

	agg.AverageFCR = meanOrNil(fcrSum, fcrCount)
	agg.AverageTGC = meanOrNil(tgcSum, tgcCount)
	agg.AverageMatureLice = meanOrNil(matureSum, matureCount)
	agg.AverageMovableLice = meanOrNil(movableSum, movableCount)

	return agg
}

func meanOrNil(sum float64, count int) *float64 {
	if count == 0 {
		return nil
	}
	result := sum / float64(count)
	return &result
}
