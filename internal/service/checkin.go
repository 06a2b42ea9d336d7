package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/habit-trail/internal/analytics"
	"github.com/pkordes/habit-trail/internal/domain"
	"github.com/pkordes/habit-trail/internal/repo"
)

const maxNoteLength = 500

// ProximityResult pairs a destination with the caller's distance to it.
type ProximityResult struct {
	Destination domain.Destination
	Proximity   analytics.Proximity
}

// TodayItem is one destination scheduled for today.
type TodayItem struct {
	Destination domain.Destination
	Completed   bool
	Proximity   analytics.Proximity
}

// CheckInService records visits and answers "where am I relative to my goals today".
type CheckInService struct {
	dests  repo.DestinationRepo
	visits repo.VisitRepo
	cache  StatsCache
	clock  Clock
}

// NewCheckInService constructs a CheckInService.
func NewCheckInService(dests repo.DestinationRepo, visits repo.VisitRepo, cache StatsCache, clock Clock) *CheckInService {
	return &CheckInService{dests: dests, visits: visits, cache: cache, clock: clock}
}

// Proximity reports how far pos is from the destination. A nil pos yields
// an unknown status rather than an error.
func (s *CheckInService) Proximity(ctx context.Context, id uuid.UUID, pos *domain.Position) (ProximityResult, error) {
	if pos != nil {
		if err := validatePosition(*pos); err != nil {
			return ProximityResult{}, fmt.Errorf("service.CheckInService.Proximity: %w", err)
		}
	}

	d, err := s.dests.GetByID(ctx, id)
	if err != nil {
		return ProximityResult{}, fmt.Errorf("service.CheckInService.Proximity: %w", err)
	}
	return ProximityResult{Destination: d, Proximity: analytics.CheckProximity(pos, d)}, nil
}

// CheckIn records a visit at the destination if pos lies within its radius
// and the destination has not been visited yet today.
func (s *CheckInService) CheckIn(ctx context.Context, id uuid.UUID, pos *domain.Position, note string) (VisitRecord, error) {
	note = cleanText(note)
	if tooLong(note, maxNoteLength) {
		return VisitRecord{}, fmt.Errorf("service.CheckInService.CheckIn: %w: note must be at most %d characters", domain.ErrValidation, maxNoteLength)
	}

	d, err := s.dests.GetByID(ctx, id)
	if err != nil {
		return VisitRecord{}, fmt.Errorf("service.CheckInService.CheckIn: %w", err)
	}

	if pos == nil {
		return VisitRecord{}, fmt.Errorf("service.CheckInService.CheckIn: %w", domain.ErrPositionUnknown)
	}
	if err := validatePosition(*pos); err != nil {
		return VisitRecord{}, fmt.Errorf("service.CheckInService.CheckIn: %w", err)
	}
	if !analytics.IsWithinCheckInRange(*pos, d) {
		dist := analytics.Distance(*pos, d.Position())
		return VisitRecord{}, fmt.Errorf("service.CheckInService.CheckIn: %w: %.0fm from %s, radius is %.0fm",
			domain.ErrOutOfRange, dist, d.Name, d.RadiusMeters)
	}

	now := s.clock.today()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	v, err := s.visits.CreateOncePerDay(ctx, domain.Visit{
		DestinationID: id,
		VisitedAt:     now,
		Latitude:      pos.Latitude,
		Longitude:     pos.Longitude,
		Note:          note,
	}, dayStart, dayStart.AddDate(0, 0, 1))
	if errors.Is(err, domain.ErrConflict) {
		return VisitRecord{}, fmt.Errorf("service.CheckInService.CheckIn: %w: already checked in at %s today", domain.ErrConflict, d.Name)
	}
	if err != nil {
		return VisitRecord{}, fmt.Errorf("service.CheckInService.CheckIn: %w", err)
	}

	invalidate(ctx, s.cache)
	slog.InfoContext(ctx, "check-in recorded",
		"destination_id", id,
		"visit_id", v.ID,
	)
	return VisitRecord{Visit: v, DestinationName: d.Name}, nil
}

// Today lists the destinations scheduled for the current weekday, each with
// whether it was already visited today and the caller's proximity to it.
func (s *CheckInService) Today(ctx context.Context, pos *domain.Position) ([]TodayItem, error) {
	if pos != nil {
		if err := validatePosition(*pos); err != nil {
			return nil, fmt.Errorf("service.CheckInService.Today: %w", err)
		}
	}

	dests, err := s.dests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CheckInService.Today: %w", err)
	}
	visits, err := s.visits.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.CheckInService.Today: %w", err)
	}

	now := s.clock.today()
	items := []TodayItem{}
	for _, d := range dests {
		if !analytics.ScheduledOn(d.Frequency, now.Weekday()) {
			continue
		}
		items = append(items, TodayItem{
			Destination: d,
			Completed:   analytics.VisitedOn(visits, d.ID, now),
			Proximity:   analytics.CheckProximity(pos, d),
		})
	}
	return items, nil
}
