// Package domain contains the core data types for the Habit Trail application.
// It is imported by every other internal package (analytics, repo, service,
// handler) and holds no logic beyond small value helpers.
package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Destination is a place the user intends to visit on a weekly schedule.
// RadiusMeters is the geofence a check-in position must fall inside.
type Destination struct {
	ID           uuid.UUID
	Name         string
	Address      string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	Frequency    Frequency
	CreatedAt    time.Time
}

// Position returns the destination's coordinates as a Position.
func (d Destination) Position() Position {
	return Position{Latitude: d.Latitude, Longitude: d.Longitude}
}

// Frequency is the intended weekly visiting schedule.
// Days holds weekday numbers where 0 is Sunday and 6 is Saturday.
// Time is the target time of day in "HH:MM" form.
type Frequency struct {
	Days []int
	Time string
}

var clockTime = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidClockTime reports whether s is a 24-hour "HH:MM" time of day.
func ValidClockTime(s string) bool {
	return clockTime.MatchString(s)
}

// Position is a latitude/longitude reading in decimal degrees.
// A missing reading is represented by a nil *Position, never by the zero value.
type Position struct {
	Latitude  float64
	Longitude float64
}
