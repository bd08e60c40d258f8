// Package alerts maps biological metrics to the four-level alert scale used
// on dashboards. All functions are pure and total: nil inputs short-circuit
// to AlertInfo ("no data") before any threshold logic runs.
package alerts

import "github.com/aquarian247/aquamind-planning/internal/domain/models"

// Lice thresholds per fish, aligned with Norwegian regulatory limits. Mature
// lice has strict priority over movable lice.
const (
	matureLiceWarning  = 0.2
	matureLiceDanger   = 0.5
	movableLiceWarning = 0.5
	movableLiceDanger  = 1.0
)

// Mortality percentage thresholds.
const (
	mortalityWarning = 1.0
	mortalityDanger  = 2.0
)

// FCR thresholds; lower is better.
const (
	fcrWarning = 1.15
	fcrDanger  = 1.25
)

// TGC thresholds; higher is better.
const (
	tgcDanger  = 2.5
	tgcWarning = 3.0
)

// Capacity utilization thresholds (percent).
const (
	capacityLow     = 70
	capacityOptimal = 85
)

// LiceLevel evaluates sea lice counts. Mature lice drives the result; movable
// lice is only consulted when mature lice is absent or unremarkable.
func LiceLevel(matureLice, movableLice *float64) models.AlertLevel {
	if matureLice == nil && movableLice == nil {
		return models.AlertInfo
	}

	if matureLice != nil {
		if *matureLice > matureLiceDanger {
			return models.AlertDanger
		}
		if *matureLice >= matureLiceWarning {
			return models.AlertWarning
		}
	}

	if movableLice != nil {
		if *movableLice > movableLiceDanger {
			return models.AlertDanger
		}
		if *movableLice >= movableLiceWarning {
			return models.AlertWarning
		}
	}

	return models.AlertSuccess
}

// MortalityLevel evaluates a mortality percentage.
func MortalityLevel(mortalityPct *float64) models.AlertLevel {
	if mortalityPct == nil {
		return models.AlertInfo
	}
	if *mortalityPct > mortalityDanger {
		return models.AlertDanger
	}
	if *mortalityPct >= mortalityWarning {
		return models.AlertWarning
	}
	return models.AlertSuccess
}

// FCRLevel evaluates feed conversion ratio; lower is better. Both band edges
// are inclusive on the warning side.
func FCRLevel(fcr *float64) models.AlertLevel {
	if fcr == nil {
		return models.AlertInfo
	}
	if *fcr > fcrDanger {
		return models.AlertDanger
	}
	if *fcr >= fcrWarning {
		return models.AlertWarning
	}
	return models.AlertSuccess
}

// TGCLevel evaluates thermal growth coefficient; higher is better.
func TGCLevel(tgc *float64) models.AlertLevel {
	if tgc == nil {
		return models.AlertInfo
	}
	if *tgc < tgcDanger {
		return models.AlertDanger
	}
	if *tgc <= tgcWarning {
		return models.AlertWarning
	}
	return models.AlertSuccess
}

// CapacityLevel evaluates capacity utilization percent. Underutilization maps
// to warning rather than danger, and the 70-85 band maps to info; this
// ordering comes straight from the operational targets and is kept verbatim
// pending product confirmation.
func CapacityLevel(utilizationPct *float64) models.AlertLevel {
	if utilizationPct == nil {
		return models.AlertInfo
	}
	if *utilizationPct < capacityLow {
		return models.AlertWarning
	}
	if *utilizationPct < capacityOptimal {
		return models.AlertInfo
	}
	return models.AlertSuccess
}

// FacilityHealth combines lice, mortality and FCR into one composite level
// with priority lice > mortality > FCR. Any contributing warning without a
// danger yields warning; info only when every metric reported no data.
func FacilityHealth(matureLice, movableLice, mortalityPct, fcr *float64) models.AlertLevel {
	liceLevel := LiceLevel(matureLice, movableLice)
	if liceLevel == models.AlertDanger {
		return models.AlertDanger
	}

	mortalityLevel := MortalityLevel(mortalityPct)
	if mortalityLevel == models.AlertDanger {
		return models.AlertDanger
	}

	fcrLevel := FCRLevel(fcr)
	if fcrLevel == models.AlertDanger || fcrLevel == models.AlertWarning ||
		liceLevel == models.AlertWarning || mortalityLevel == models.AlertWarning {
		return models.AlertWarning
	}

	if liceLevel == models.AlertInfo && mortalityLevel == models.AlertInfo && fcrLevel == models.AlertInfo {
		return models.AlertInfo
	}

	return models.AlertSuccess
}
