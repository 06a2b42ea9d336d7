package repo_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/habit-trail/internal/domain"
	"github.com/pkordes/habit-trail/testutil"
)

// newTestTx returns a transaction that is rolled back after the test.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	return testutil.NewTx(t)
}

// destinationFixture returns a domain.Destination with sensible defaults.
// Callers can override individual fields after calling this function.
func destinationFixture() domain.Destination {
	return domain.Destination{
		Name:         "Riverside Gym",
		Address:      "1-2-3 Marunouchi, Chiyoda",
		Latitude:     35.6812,
		Longitude:    139.7671,
		RadiusMeters: 50,
		Frequency:    domain.Frequency{Days: []int{1, 3, 5}, Time: "07:30"},
	}
}

func visitFixture(destID uuid.UUID, at time.Time) domain.Visit {
	return domain.Visit{
		DestinationID: destID,
		VisitedAt:     at,
		Latitude:      35.6813,
		Longitude:     139.7672,
		Note:          "leg day",
	}
}
