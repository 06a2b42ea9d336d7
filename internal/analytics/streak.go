package analytics

import (
	"bytes"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/habit-trail/internal/domain"
)

// Streak counts consecutive calendar days with at least one visit, across
// all destinations. The run must end today or yesterday (in now's location);
// a most recent visit older than yesterday, or dated after today, means no
// streak. A run ending yesterday with nothing today still counts.
func Streak(visits []domain.Visit, now time.Time) int {
	if len(visits) == 0 {
		return 0
	}

	loc := now.Location()
	seen := make(map[int]struct{}, len(visits))
	days := make([]int, 0, len(visits))
	for _, v := range visits {
		n := dayNumber(v.VisitedAt.In(loc))
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		days = append(days, n)
	}
	slices.Sort(days)
	slices.Reverse(days)

	if gap := dayNumber(now) - days[0]; gap != 0 && gap != 1 {
		return 0
	}

	count := 1
	for i := 1; i < len(days); i++ {
		if days[i-1]-days[i] != 1 {
			break
		}
		count++
	}
	return count
}

// MostVisitedResult is the destination with the highest visit count.
// DestinationID is uuid.Nil and Count is 0 when there were no visits.
type MostVisitedResult struct {
	DestinationID uuid.UUID
	Count         int
}

// MostVisited tallies visits per destination. Ties go to the smallest
// destination ID in byte order, which matches lowercase string order.
func MostVisited(visits []domain.Visit) MostVisitedResult {
	counts := make(map[uuid.UUID]int)
	for _, v := range visits {
		counts[v.DestinationID]++
	}

	var best MostVisitedResult
	for id, n := range counts {
		if n > best.Count || (n == best.Count && bytes.Compare(id[:], best.DestinationID[:]) < 0) {
			best = MostVisitedResult{DestinationID: id, Count: n}
		}
	}
	return best
}
