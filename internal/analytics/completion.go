package analytics

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/habit-trail/internal/domain"
)

// WeeklyCompletion is a destination's progress against its weekly target.
// Rate is a percentage in [0,100], rounded to one decimal place.
type WeeklyCompletion struct {
	CompletedThisWeek int
	TargetFrequency   int
	Rate              float64
}

// TargetFrequency is the number of distinct scheduled weekdays in f,
// or 1 when nothing is scheduled.
func TargetFrequency(f domain.Frequency) int {
	var seen [7]bool
	n := 0
	for _, d := range f.Days {
		if d >= 0 && d <= 6 && !seen[d] {
			seen[d] = true
			n++
		}
	}
	if n == 0 {
		return 1
	}
	return n
}

// WeeklyCompletionRate counts the visits to destinationID inside the current
// week (see WeekBounds) and compares them with target.
// The rate is capped at 100 and is 0 when target is not positive.
func WeeklyCompletionRate(visits []domain.Visit, destinationID uuid.UUID, target int, now time.Time) WeeklyCompletion {
	start, end := WeekBounds(now)

	count := 0
	for _, v := range visits {
		if v.DestinationID == destinationID && within(v.VisitedAt, start, end) {
			count++
		}
	}

	result := WeeklyCompletion{CompletedThisWeek: count, TargetFrequency: target}
	if target > 0 {
		result.Rate = roundTenth(math.Min(100, float64(count)/float64(target)*100))
	}
	return result
}

// OverallRate is the mean of the per-destination rates, rounded to one
// decimal place. It is 0 when there are no destinations.
func OverallRate(rates []WeeklyCompletion) float64 {
	if len(rates) == 0 {
		return 0
	}
	var sum float64
	for _, r := range rates {
		sum += r.Rate
	}
	return roundTenth(sum / float64(len(rates)))
}

func roundTenth(x float64) float64 {
	return math.Round(x*10) / 10
}
