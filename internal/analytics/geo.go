// Package analytics holds the pure computations behind the habit views:
// check-in proximity, weekly completion, streaks, the most visited destination
// and period filtering. Nothing here performs I/O or reads the clock; every
// time-windowed function takes "now", and local time means now.Location().
package analytics

import (
	"math"

	"github.com/pkordes/habit-trail/internal/domain"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6_371_000.0

// Distance returns the great-circle distance between a and b in meters.
func Distance(a, b domain.Position) float64 {
	phi1 := radians(a.Latitude)
	phi2 := radians(b.Latitude)
	dPhi := radians(b.Latitude - a.Latitude)
	dLambda := radians(b.Longitude - a.Longitude)

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	// Rounding can push h a hair outside [0,1] for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// IsWithinCheckInRange reports whether pos lies inside dest's radius.
// The boundary is inclusive.
func IsWithinCheckInRange(pos domain.Position, dest domain.Destination) bool {
	return Distance(pos, dest.Position()) <= dest.RadiusMeters
}

// ProximityStatus is the check-in eligibility of a position.
type ProximityStatus int

const (
	// ProximityUnknown means no position was available.
	ProximityUnknown ProximityStatus = iota
	ProximityInRange
	ProximityTooFar
)

func (s ProximityStatus) String() string {
	switch s {
	case ProximityInRange:
		return "in_range"
	case ProximityTooFar:
		return "too_far"
	default:
		return "unknown"
	}
}

// Proximity is the result of CheckProximity.
// DistanceMeters is only meaningful when Status is not ProximityUnknown.
type Proximity struct {
	Status         ProximityStatus
	DistanceMeters float64
}

// Known reports whether a position was available.
func (p Proximity) Known() bool {
	return p.Status != ProximityUnknown
}

// CheckProximity classifies pos against dest. A nil pos yields
// ProximityUnknown, which callers must keep distinct from ProximityTooFar.
func CheckProximity(pos *domain.Position, dest domain.Destination) Proximity {
	if pos == nil {
		return Proximity{Status: ProximityUnknown}
	}
	d := Distance(*pos, dest.Position())
	if d <= dest.RadiusMeters {
		return Proximity{Status: ProximityInRange, DistanceMeters: d}
	}
	return Proximity{Status: ProximityTooFar, DistanceMeters: d}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
