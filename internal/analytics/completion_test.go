package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/habit-trail/internal/analytics"
	"github.com/pkordes/habit-trail/internal/domain"
)

func TestTargetFrequency(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want int
	}{
		{"nothing scheduled falls back to 1", nil, 1},
		{"three days", []int{0, 3, 5}, 3},
		{"duplicates counted once", []int{1, 1, 2}, 2},
		{"out of range days ignored", []int{7, -1}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, analytics.TargetFrequency(domain.Frequency{Days: tc.days}))
		})
	}
}

// Sun/Wed/Fri schedule with visits on this week's Sunday and Wednesday.
func TestWeeklyCompletionRate_TwoOfThree(t *testing.T) {
	visits := []domain.Visit{
		visitAt(destA, at(2025, 11, 16, 9, 0)),
		visitAt(destA, at(2025, 11, 19, 17, 0)),
		visitAt(destA, at(2025, 11, 12, 9, 0)), // previous week
		visitAt(destB, at(2025, 11, 20, 9, 0)), // other destination
	}
	target := analytics.TargetFrequency(domain.Frequency{Days: []int{0, 3, 5}, Time: "10:00"})

	got := analytics.WeeklyCompletionRate(visits, destA, target, fixedNow)

	assert.Equal(t, analytics.WeeklyCompletion{CompletedThisWeek: 2, TargetFrequency: 3, Rate: 66.7}, got)
}

func TestWeeklyCompletionRate_CappedAt100(t *testing.T) {
	var visits []domain.Visit
	for day := 16; day <= 20; day++ {
		visits = append(visits, visitAt(destA, at(2025, 11, day, 9, 0)))
	}

	got := analytics.WeeklyCompletionRate(visits, destA, 2, fixedNow)

	assert.Equal(t, 5, got.CompletedThisWeek)
	assert.Equal(t, 100.0, got.Rate)
}

func TestWeeklyCompletionRate_NonPositiveTarget(t *testing.T) {
	visits := []domain.Visit{visitAt(destA, fixedNow)}

	got := analytics.WeeklyCompletionRate(visits, destA, 0, fixedNow)

	assert.Equal(t, 1, got.CompletedThisWeek)
	assert.Zero(t, got.Rate)
}

func TestWeeklyCompletionRate_WindowEdges(t *testing.T) {
	visits := []domain.Visit{
		visitAt(destA, at(2025, 11, 15, 23, 59)), // Saturday before: excluded
		visitAt(destA, at(2025, 11, 22, 23, 59)), // Saturday night: included
	}

	got := analytics.WeeklyCompletionRate(visits, destA, 1, fixedNow)

	assert.Equal(t, 1, got.CompletedThisWeek)
	assert.Equal(t, 100.0, got.Rate)
}

func TestOverallRate(t *testing.T) {
	assert.Zero(t, analytics.OverallRate(nil))

	got := analytics.OverallRate([]analytics.WeeklyCompletion{{Rate: 66.7}, {Rate: 100}, {Rate: 0}})

	assert.Equal(t, 55.6, got)
}
