package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/habit-trail/internal/domain"
)

// Period is a history window relative to "now".
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodAll   Period = "all"
)

// ParsePeriod converts a query value into a Period.
// An empty string selects PeriodWeek, the history view's default.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return PeriodWeek, nil
	case PeriodWeek, PeriodMonth, PeriodAll:
		return Period(s), nil
	default:
		return "", fmt.Errorf("%w: period must be one of week, month, all", domain.ErrValidation)
	}
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekBounds returns the current week window: the most recent Sunday at
// 00:00:00 through the following Saturday at 23:59:59.999, in now's location.
func WeekBounds(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	first := d - int(now.Weekday())
	start = time.Date(y, m, first, 0, 0, 0, 0, now.Location())
	end = time.Date(y, m, first+6, 23, 59, 59, int(999*time.Millisecond), now.Location())
	return start, end
}

// FilterByPeriod returns the visits that fall inside period relative to now.
// The input is never modified and the result is always a fresh slice.
// PeriodMonth matches now's calendar month and year; any other value
// than PeriodAll or PeriodMonth is treated as PeriodWeek.
func FilterByPeriod(visits []domain.Visit, period Period, now time.Time) []domain.Visit {
	out := make([]domain.Visit, 0, len(visits))

	switch period {
	case PeriodAll:
		return append(out, visits...)
	case PeriodMonth:
		year, month, _ := now.Date()
		for _, v := range visits {
			y, m, _ := v.VisitedAt.In(now.Location()).Date()
			if y == year && m == month {
				out = append(out, v)
			}
		}
	default:
		start, end := WeekBounds(now)
		for _, v := range visits {
			if within(v.VisitedAt, start, end) {
				out = append(out, v)
			}
		}
	}
	return out
}

// FilterByDate keeps the visits made on day's calendar date, in day's location.
func FilterByDate(visits []domain.Visit, day time.Time) []domain.Visit {
	out := make([]domain.Visit, 0)
	for _, v := range visits {
		if sameDay(v.VisitedAt.In(day.Location()), day) {
			out = append(out, v)
		}
	}
	return out
}

// FilterByDestination keeps the visits for id. uuid.Nil keeps everything.
func FilterByDestination(visits []domain.Visit, id uuid.UUID) []domain.Visit {
	out := make([]domain.Visit, 0, len(visits))
	for _, v := range visits {
		if id == uuid.Nil || v.DestinationID == id {
			out = append(out, v)
		}
	}
	return out
}

// SortByVisitedAtDesc returns a copy of visits ordered newest first.
func SortByVisitedAtDesc(visits []domain.Visit) []domain.Visit {
	out := slices.Clone(visits)
	slices.SortStableFunc(out, func(a, b domain.Visit) int {
		return b.VisitedAt.Compare(a.VisitedAt)
	})
	return out
}

// VisitedDates returns the distinct calendar dates with at least one visit,
// as midnight in loc, in ascending order.
func VisitedDates(visits []domain.Visit, loc *time.Location) []time.Time {
	seen := make(map[int]time.Time)
	for _, v := range visits {
		local := v.VisitedAt.In(loc)
		n := dayNumber(local)
		if _, ok := seen[n]; !ok {
			seen[n] = StartOfDay(local)
		}
	}

	out := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b time.Time) int { return cmp.Compare(a.Unix(), b.Unix()) })
	return out
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// dayNumber maps a calendar date to a day count that ignores time of day and
// location, so consecutive dates always differ by exactly one.
func dayNumber(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
