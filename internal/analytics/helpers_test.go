package analytics_test

import (
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/habit-trail/internal/domain"
)

// jst is a fixed zone so tests never depend on the machine's tzdata.
var jst = time.FixedZone("JST", 9*60*60)

// fixedNow is Thursday 2025-11-20, mid-morning local time.
var fixedNow = time.Date(2025, 11, 20, 10, 0, 0, 0, jst)

var (
	destA = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	destB = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
)

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, jst)
}

func visitAt(dest uuid.UUID, t time.Time) domain.Visit {
	return domain.Visit{ID: uuid.New(), DestinationID: dest, VisitedAt: t}
}
