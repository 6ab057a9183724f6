package calculations

import (
	"math"
	"time"
)

// Baseline is a vehicle's manually entered odometer and the time it was set.
// A nil UpdatedAt means the baseline has never been set and any dated reading
// may raise it.
type Baseline struct {
	Odometer  float64
	UpdatedAt *time.Time
}

// Reading is an odometer value reported by an activity record.
type Reading struct {
	Date     time.Time
	Odometer *float64
}

func (b Baseline) since() time.Time {
	if b.UpdatedAt == nil {
		return time.Time{}
	}
	return *b.UpdatedAt
}

// CurrentOdometer derives the odometer shown for a vehicle. Readings dated at or
// before the last manual set are ignored, so older logs never override a manual
// correction, and the result is never below the baseline.
func CurrentOdometer(baseline Baseline, readings []Reading) float64 {
	since := baseline.since()
	current := baseline.Odometer
	for _, r := range readings {
		if !r.Date.After(since) || !hasOdometer(r.Odometer) {
			continue
		}
		current = math.Max(current, *r.Odometer)
	}
	return current
}

// AdvanceOdometer reports whether a newly added reading should move the stored
// baseline forward, and to what. stored is the baseline as currently persisted,
// which may already have been advanced by earlier readings.
//
// The write-back leaves UpdatedAt alone: an advance is derived, not a manual
// edit.
func AdvanceOdometer(stored Baseline, r Reading) (float64, bool) {
	if r.Odometer == nil || !isFinite(*r.Odometer) {
		return stored.Odometer, false
	}
	if *r.Odometer <= stored.Odometer || !r.Date.After(stored.since()) {
		return stored.Odometer, false
	}
	return *r.Odometer, true
}

// hasOdometer treats zero as "not recorded", matching how blank form fields were
// stored.
func hasOdometer(v *float64) bool {
	return v != nil && *v != 0 && isFinite(*v)
}
