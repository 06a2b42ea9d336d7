package analytics_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/habit-trail/internal/analytics"
	"github.com/pkordes/habit-trail/internal/domain"
)

func TestWeekBounds_Thursday(t *testing.T) {
	start, end := analytics.WeekBounds(fixedNow)

	assert.True(t, start.Equal(at(2025, 11, 16, 0, 0)), "start = %v", start)
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.True(t, end.Equal(time.Date(2025, 11, 22, 23, 59, 59, 999_000_000, jst)), "end = %v", end)
}

func TestWeekBounds_SundayStartsItsOwnWeek(t *testing.T) {
	start, _ := analytics.WeekBounds(at(2025, 11, 16, 0, 0))

	assert.True(t, start.Equal(at(2025, 11, 16, 0, 0)))
}

func TestWeekBounds_CrossesMonthBoundary(t *testing.T) {
	start, end := analytics.WeekBounds(at(2025, 12, 2, 8, 0)) // Tuesday

	assert.True(t, start.Equal(at(2025, 11, 30, 0, 0)))
	assert.Equal(t, time.December, end.Month())
	assert.Equal(t, 6, end.Day())
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]analytics.Period{
		"":      analytics.PeriodWeek,
		"week":  analytics.PeriodWeek,
		"month": analytics.PeriodMonth,
		"all":   analytics.PeriodAll,
	} {
		got, err := analytics.ParsePeriod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := analytics.ParsePeriod("year")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func historyFixture() []domain.Visit {
	return []domain.Visit{
		visitAt(destA, at(2025, 11, 20, 10, 30)), // this week
		visitAt(destA, at(2025, 11, 16, 0, 0)),   // Sunday 00:00, first instant of the week
		visitAt(destB, at(2025, 11, 15, 23, 59)), // Saturday before, same month
		visitAt(destA, at(2025, 10, 31, 9, 0)),   // last month
		visitAt(destB, at(2024, 11, 20, 9, 0)),   // same month, last year
	}
}

func TestFilterByPeriod_Week(t *testing.T) {
	visits := historyFixture()

	got := analytics.FilterByPeriod(visits, analytics.PeriodWeek, fixedNow)

	require.Len(t, got, 2)
	assert.Equal(t, visits[0].ID, got[0].ID)
	assert.Equal(t, visits[1].ID, got[1].ID)
}

func TestFilterByPeriod_Month(t *testing.T) {
	visits := historyFixture()

	got := analytics.FilterByPeriod(visits, analytics.PeriodMonth, fixedNow)

	require.Len(t, got, 3)
	for _, v := range got {
		assert.Equal(t, 2025, v.VisitedAt.Year())
		assert.Equal(t, time.November, v.VisitedAt.Month())
	}
}

func TestFilterByPeriod_MonthUsesLocalCalendar(t *testing.T) {
	// 2025-10-31 20:00 UTC is already November 1st in Tokyo.
	v := visitAt(destA, time.Date(2025, 10, 31, 20, 0, 0, 0, time.UTC))

	got := analytics.FilterByPeriod([]domain.Visit{v}, analytics.PeriodMonth, fixedNow)

	assert.Len(t, got, 1)
}

func TestFilterByPeriod_AllIsIdempotent(t *testing.T) {
	visits := historyFixture()

	once := analytics.FilterByPeriod(visits, analytics.PeriodAll, fixedNow)
	twice := analytics.FilterByPeriod(once, analytics.PeriodAll, fixedNow)

	assert.Equal(t, visits, once)
	assert.Equal(t, once, twice)
}

func TestFilterByPeriod_DoesNotMutateInput(t *testing.T) {
	visits := historyFixture()
	snapshot := append([]domain.Visit(nil), visits...)

	got := analytics.FilterByPeriod(visits, analytics.PeriodAll, fixedNow)
	got[0].Note = "changed"

	assert.Equal(t, snapshot, visits)
}

func TestFilterByPeriod_Empty(t *testing.T) {
	got := analytics.FilterByPeriod(nil, analytics.PeriodWeek, fixedNow)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterByDate(t *testing.T) {
	visits := historyFixture()

	got := analytics.FilterByDate(visits, at(2025, 11, 15, 0, 0))

	require.Len(t, got, 1)
	assert.Equal(t, visits[2].ID, got[0].ID)
}

func TestFilterByDestination(t *testing.T) {
	visits := historyFixture()

	assert.Len(t, analytics.FilterByDestination(visits, destB), 2)
	assert.Len(t, analytics.FilterByDestination(visits, destA), 3)
	assert.Len(t, analytics.FilterByDestination(visits, uuid.Nil), len(visits))
}

func TestSortByVisitedAtDesc(t *testing.T) {
	visits := historyFixture()
	shuffled := []domain.Visit{visits[3], visits[0], visits[4], visits[2], visits[1]}

	got := analytics.SortByVisitedAtDesc(shuffled)

	assert.Equal(t, visits, got)
	assert.Equal(t, visits[3].ID, shuffled[0].ID, "input order must be left alone")
}

func TestVisitedDates(t *testing.T) {
	visits := []domain.Visit{
		visitAt(destA, at(2025, 11, 19, 18, 0)),
		visitAt(destB, at(2025, 11, 18, 9, 0)),
		visitAt(destA, at(2025, 11, 19, 7, 0)),
	}

	got := analytics.VisitedDates(visits, jst)

	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(at(2025, 11, 18, 0, 0)))
	assert.True(t, got[1].Equal(at(2025, 11, 19, 0, 0)))
}
