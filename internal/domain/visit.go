package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeletedDestinationName is shown wherever a visit references a destination
// that no longer exists. Deleting a destination never removes its visits.
const DeletedDestinationName = "deleted destination"

// Visit is a single check-in. Visits are append-only: created once per
// check-in and never updated. DestinationID may reference a deleted destination.
type Visit struct {
	ID            uuid.UUID
	DestinationID uuid.UUID
	VisitedAt     time.Time
	Latitude      float64
	Longitude     float64
	Note          string
}
