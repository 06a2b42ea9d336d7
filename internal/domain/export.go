package domain

import "time"

// ExportRow is a single row of the visit-history export: one row per visit,
// with the destination fields denormalized onto it. DestinationName falls back
// to DeletedDestinationName when the destination no longer exists.
type ExportRow struct {
	VisitID         string
	VisitedAt       time.Time
	DestinationID   string
	DestinationName string
	Address         string
	Latitude        float64
	Longitude       float64
	Note            string
}
