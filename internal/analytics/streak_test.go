package analytics_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pkordes/habit-trail/internal/analytics"
	"github.com/pkordes/habit-trail/internal/domain"
)

func TestStreak_Empty(t *testing.T) {
	assert.Zero(t, analytics.Streak(nil, fixedNow))
	assert.Zero(t, analytics.Streak([]domain.Visit{}, fixedNow))
}

func TestStreak_StopsAtFirstGap(t *testing.T) {
	visits := []domain.Visit{
		visitAt(destA, at(2025, 11, 20, 10, 30)),
		visitAt(destA, at(2025, 11, 19, 14, 15)),
		visitAt(destB, at(2025, 11, 18, 9, 0)),
		visitAt(destA, at(2025, 11, 15, 16, 0)),
	}

	assert.Equal(t, 3, analytics.Streak(visits, fixedNow))
}

func TestStreak_SeveralVisitsOnOneDayCountOnce(t *testing.T) {
	visits := []domain.Visit{
		visitAt(destA, at(2025, 11, 20, 8, 0)),
		visitAt(destB, at(2025, 11, 20, 9, 0)),
		visitAt(destA, at(2025, 11, 19, 9, 0)),
	}

	assert.Equal(t, 2, analytics.Streak(visits, fixedNow))
}

func TestStreak_EndingYesterdayStillCounts(t *testing.T) {
	visits := []domain.Visit{
		visitAt(destA, at(2025, 11, 19, 9, 0)),
		visitAt(destA, at(2025, 11, 18, 9, 0)),
	}

	assert.Equal(t, 2, analytics.Streak(visits, fixedNow))
}

func TestStreak_YesterdayOnly(t *testing.T) {
	visits := []domain.Visit{visitAt(destA, at(2025, 11, 19, 23, 0))}

	assert.Equal(t, 1, analytics.Streak(visits, fixedNow))
}

func TestStreak_BrokenWhenLastVisitIsOlderThanYesterday(t *testing.T) {
	visits := []domain.Visit{
		visitAt(destA, at(2025, 11, 18, 9, 0)),
		visitAt(destA, at(2025, 11, 17, 9, 0)),
	}

	assert.Zero(t, analytics.Streak(visits, fixedNow))
}

func TestStreak_FutureVisitBreaksStreak(t *testing.T) {
	visits := []domain.Visit{
		visitAt(destA, at(2025, 11, 21, 9, 0)),
		visitAt(destA, at(2025, 11, 20, 9, 0)),
	}

	assert.Zero(t, analytics.Streak(visits, fixedNow))
}

func TestStreak_InputOrderIrrelevant(t *testing.T) {
	visits := []domain.Visit{
		visitAt(destA, at(2025, 11, 18, 9, 0)),
		visitAt(destA, at(2025, 11, 20, 9, 0)),
		visitAt(destA, at(2025, 11, 19, 9, 0)),
	}

	assert.Equal(t, 3, analytics.Streak(visits, fixedNow))
}

func TestMostVisited(t *testing.T) {
	visits := []domain.Visit{
		visitAt(destA, fixedNow),
		visitAt(destB, fixedNow),
		visitAt(destA, fixedNow),
	}

	got := analytics.MostVisited(visits)

	assert.Equal(t, analytics.MostVisitedResult{DestinationID: destA, Count: 2}, got)
}

func TestMostVisited_Empty(t *testing.T) {
	got := analytics.MostVisited(nil)

	assert.Equal(t, uuid.Nil, got.DestinationID)
	assert.Zero(t, got.Count)
}

func TestMostVisited_TieGoesToSmallestID(t *testing.T) {
	visits := []domain.Visit{
		visitAt(destB, fixedNow),
		visitAt(destA, fixedNow),
		visitAt(destB, fixedNow),
		visitAt(destA, fixedNow),
	}

	for range 20 { // map iteration order varies between runs
		assert.Equal(t, destA, analytics.MostVisited(visits).DestinationID)
	}
}

func TestScheduledOnAndVisitedOn(t *testing.T) {
	f := domain.Frequency{Days: []int{0, 3, 5}}
	assert.True(t, analytics.ScheduledOn(f, fixedNow.AddDate(0, 0, 1).Weekday())) // Friday
	assert.False(t, analytics.ScheduledOn(f, fixedNow.Weekday()))                 // Thursday

	visits := []domain.Visit{visitAt(destA, at(2025, 11, 20, 7, 0))}
	assert.True(t, analytics.VisitedOn(visits, destA, fixedNow))
	assert.False(t, analytics.VisitedOn(visits, destB, fixedNow))
	assert.False(t, analytics.VisitedOn(visits, destA, fixedNow.AddDate(0, 0, -1)))
}
