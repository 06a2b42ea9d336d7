package analytics

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/habit-trail/internal/domain"
)

// ScheduledOn reports whether f includes weekday.
func ScheduledOn(f domain.Frequency, weekday time.Weekday) bool {
	return slices.Contains(f.Days, int(weekday))
}

// VisitedOn reports whether destinationID has a visit on day's calendar date.
func VisitedOn(visits []domain.Visit, destinationID uuid.UUID, day time.Time) bool {
	for _, v := range visits {
		if v.DestinationID == destinationID && sameDay(v.VisitedAt.In(day.Location()), day) {
			return true
		}
	}
	return false
}
