// file: internals/features/assessments/analytics/service/age_band.go
package service

import (
	"math"
	"time"
)

/* =========================================================
   AGE BAND CLASSIFICATION (pure)
========================================================= */

type AgeBand string

const (
	BandAbove              AgeBand = "ABOVE"
	BandOnLevel            AgeBand = "ON_LEVEL"
	BandSlightlyBelow      AgeBand = "SLIGHTLY_BELOW"
	BandBelow              AgeBand = "BELOW"
	BandSignificantlyBelow AgeBand = "SIGNIFICANTLY_BELOW"
	BandUnknown            AgeBand = "UNKNOWN"
)

// ClassifyGap maps an age gap (calibrated − chronological, in years) onto a
// band. Lower bounds are inclusive: a gap of exactly −0.5 is ON_LEVEL and
// exactly 0.5 is ABOVE.
func ClassifyGap(gap float64) AgeBand {
	switch {
	case gap >= 0.5:
		return BandAbove
	case gap >= -0.5:
		return BandOnLevel
	case gap >= -1.0:
		return BandSlightlyBelow
	case gap >= -2.0:
		return BandBelow
	default:
		return BandSignificantlyBelow
	}
}

// BelowLevel reports whether a band counts toward "below level" stats:
// only BELOW and SIGNIFICANTLY_BELOW qualify. SLIGHTLY_BELOW is within the
// normal range and UNKNOWN carries no band at all.
func (b AgeBand) BelowLevel() bool {
	switch b {
	case BandBelow, BandSignificantlyBelow:
		return true
	}
	return false
}

// ChronologicalAge is the student's age in fractional years at the given
// instant.
func ChronologicalAge(dob, at time.Time) float64 {
	return at.Sub(dob).Hours() / 24 / 365.25
}

// AgeGap is calibrated level years minus chronological age, rounded to 1
// decimal.
func AgeGap(calibratedYears float64, dob, at time.Time) float64 {
	return Round1(calibratedYears - ChronologicalAge(dob, at))
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
