package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryFilter selects the visits shown in the history view.
// Date, when set, overrides Period and keeps only visits on that local day.
// DestinationID of uuid.Nil means all destinations.
type HistoryFilter struct {
	Period        string
	DestinationID uuid.UUID
	Date          *time.Time
}

// DestinationRate is one destination's completion for the current week.
type DestinationRate struct {
	DestinationID     uuid.UUID `json:"destination_id"`
	Name              string    `json:"name"`
	CompletedThisWeek int       `json:"completed_this_week"`
	TargetFrequency   int       `json:"target_frequency"`
	Rate              float64   `json:"rate"`
}

// MostVisited names the destination with the most visits in the filtered set.
// DestinationID is uuid.Nil and Count 0 when there were no visits.
type MostVisited struct {
	DestinationID uuid.UUID `json:"destination_id"`
	Name          string    `json:"name"`
	Count         int       `json:"count"`
}

// Stats is the summary block of the history view. It carries JSON tags
// because it is also the payload stored in the stats cache.
type Stats struct {
	TotalVisits  int               `json:"total_visits"`
	MostVisited  MostVisited       `json:"most_visited"`
	Streak       int               `json:"streak"`
	Rates        []DestinationRate `json:"rates"`
	OverallRate  float64           `json:"overall_rate"`
	VisitedDates []time.Time       `json:"visited_dates"`
}
