package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/habit-trail/internal/analytics"
	"github.com/pkordes/habit-trail/internal/domain"
	"github.com/pkordes/habit-trail/internal/repo"
)

// VisitRecord is a visit with its destination name resolved.
type VisitRecord struct {
	domain.Visit
	DestinationName string
	// DestinationDeleted is true when the destination no longer exists.
	DestinationDeleted bool
}

// VisitPage is one page of the filtered history, newest first.
type VisitPage struct {
	Items []VisitRecord
	Total int
	Page  domain.PaginationParams
}

// MapMarker is a destination with a summary of its visits.
type MapMarker struct {
	Destination   domain.Destination
	VisitCount    int
	LastVisitedAt *time.Time
}

// MapView is everything needed to draw the destinations map.
type MapView struct {
	Viewport analytics.MapViewport
	Markers  []MapMarker
}

// HistoryService serves the history, stats, export and map views.
type HistoryService struct {
	dests  repo.DestinationRepo
	visits repo.VisitRepo
	cache  StatsCache
	clock  Clock
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(dests repo.DestinationRepo, visits repo.VisitRepo, cache StatsCache, clock Clock) *HistoryService {
	return &HistoryService{dests: dests, visits: visits, cache: cache, clock: clock}
}

// Visits returns one page of the visits selected by f.
func (s *HistoryService) Visits(ctx context.Context, f domain.HistoryFilter, p domain.PaginationParams) (VisitPage, error) {
	now := s.clock.today()
	filtered, _, names, err := s.load(ctx, f, now)
	if err != nil {
		return VisitPage{}, fmt.Errorf("service.HistoryService.Visits: %w", err)
	}

	start, end := p.Window(len(filtered))
	items := make([]VisitRecord, 0, end-start)
	for _, v := range filtered[start:end] {
		items = append(items, record(v, names))
	}
	return VisitPage{Items: items, Total: len(filtered), Page: p}, nil
}

// Stats summarizes the visits selected by f. Weekly rates and the streak
// always look at the full history, not just the filtered window.
func (s *HistoryService) Stats(ctx context.Context, f domain.HistoryFilter) (domain.Stats, error) {
	now := s.clock.today()
	key := statsKey(f, now)

	var (
		gen       int64
		cacheable bool
	)
	if s.cache != nil {
		cached, g, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			slog.WarnContext(ctx, "stats cache get failed", "error", err)
		case ok:
			return cached, nil
		default:
			gen, cacheable = g, true
		}
	}

	filtered, all, names, err := s.load(ctx, f, now)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("service.HistoryService.Stats: %w", err)
	}
	dests, err := s.dests.List(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("service.HistoryService.Stats: %w", err)
	}

	stats := domain.Stats{
		TotalVisits:  len(filtered),
		Streak:       analytics.Streak(all, now),
		Rates:        []domain.DestinationRate{},
		VisitedDates: analytics.VisitedDates(filtered, now.Location()),
	}

	if mv := analytics.MostVisited(filtered); mv.Count > 0 {
		stats.MostVisited = domain.MostVisited{
			DestinationID: mv.DestinationID,
			Name:          destinationName(names, mv.DestinationID),
			Count:         mv.Count,
		}
	}

	completions := make([]analytics.WeeklyCompletion, 0, len(dests))
	for _, d := range dests {
		if f.DestinationID != uuid.Nil && d.ID != f.DestinationID {
			continue
		}
		wc := analytics.WeeklyCompletionRate(all, d.ID, analytics.TargetFrequency(d.Frequency), now)
		completions = append(completions, wc)
		stats.Rates = append(stats.Rates, domain.DestinationRate{
			DestinationID:     d.ID,
			Name:              d.Name,
			CompletedThisWeek: wc.CompletedThisWeek,
			TargetFrequency:   wc.TargetFrequency,
			Rate:              wc.Rate,
		})
	}
	stats.OverallRate = analytics.OverallRate(completions)

	if cacheable {
		if err := s.cache.Set(ctx, gen, key, stats); err != nil {
			slog.WarnContext(ctx, "stats cache set failed", "error", err)
		}
	}
	return stats, nil
}

// Export returns one flat row per visit selected by f, newest first.
func (s *HistoryService) Export(ctx context.Context, f domain.HistoryFilter) ([]domain.ExportRow, error) {
	now := s.clock.today()
	filtered, _, names, err := s.load(ctx, f, now)
	if err != nil {
		return nil, fmt.Errorf("service.HistoryService.Export: %w", err)
	}
	dests, err := s.dests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.HistoryService.Export: %w", err)
	}
	addresses := make(map[uuid.UUID]string, len(dests))
	for _, d := range dests {
		addresses[d.ID] = d.Address
	}

	rows := make([]domain.ExportRow, 0, len(filtered))
	for _, v := range filtered {
		rows = append(rows, domain.ExportRow{
			VisitID:         v.ID.String(),
			VisitedAt:       v.VisitedAt.In(now.Location()),
			DestinationID:   v.DestinationID.String(),
			DestinationName: destinationName(names, v.DestinationID),
			Address:         addresses[v.DestinationID],
			Latitude:        v.Latitude,
			Longitude:       v.Longitude,
			Note:            v.Note,
		})
	}
	return rows, nil
}

// MapView returns every destination with its visit summary and a viewport
// that frames them.
func (s *HistoryService) MapView(ctx context.Context) (MapView, error) {
	dests, err := s.dests.List(ctx)
	if err != nil {
		return MapView{}, fmt.Errorf("service.HistoryService.MapView: %w", err)
	}
	visits, err := s.visits.List(ctx)
	if err != nil {
		return MapView{}, fmt.Errorf("service.HistoryService.MapView: %w", err)
	}

	markers := make([]MapMarker, 0, len(dests))
	for _, d := range dests {
		m := MapMarker{Destination: d}
		for _, v := range analytics.FilterByDestination(visits, d.ID) {
			m.VisitCount++
			if m.LastVisitedAt == nil || v.VisitedAt.After(*m.LastVisitedAt) {
				at := v.VisitedAt
				m.LastVisitedAt = &at
			}
		}
		markers = append(markers, m)
	}
	return MapView{Viewport: analytics.Viewport(dests), Markers: markers}, nil
}

// load returns the visits selected by f (newest first), the full history and
// a name lookup for every existing destination.
func (s *HistoryService) load(ctx context.Context, f domain.HistoryFilter, now time.Time) (filtered, all []domain.Visit, names map[uuid.UUID]string, err error) {
	period, err := analytics.ParsePeriod(f.Period)
	if err != nil {
		return nil, nil, nil, err
	}

	all, err = s.visits.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	dests, err := s.dests.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	names = make(map[uuid.UUID]string, len(dests))
	for _, d := range dests {
		names[d.ID] = d.Name
	}

	if f.Date != nil {
		y, m, d := f.Date.Date()
		filtered = analytics.FilterByDate(all, time.Date(y, m, d, 0, 0, 0, 0, now.Location()))
	} else {
		filtered = analytics.FilterByPeriod(all, period, now)
	}
	filtered = analytics.FilterByDestination(filtered, f.DestinationID)
	return analytics.SortByVisitedAtDesc(filtered), all, names, nil
}

func record(v domain.Visit, names map[uuid.UUID]string) VisitRecord {
	name, ok := names[v.DestinationID]
	if !ok {
		name = domain.DeletedDestinationName
	}
	return VisitRecord{Visit: v, DestinationName: name, DestinationDeleted: !ok}
}

func destinationName(names map[uuid.UUID]string, id uuid.UUID) string {
	if name, ok := names[id]; ok {
		return name
	}
	return domain.DeletedDestinationName
}

// statsKey identifies a stats result. It includes today's date so cached
// week windows roll over at midnight.
func statsKey(f domain.HistoryFilter, now time.Time) string {
	var b strings.Builder
	b.WriteString("stats:")
	b.WriteString(now.Format(time.DateOnly))
	b.WriteString(":")
	b.WriteString(f.Period)
	b.WriteString(":")
	if f.DestinationID != uuid.Nil {
		b.WriteString(f.DestinationID.String())
	}
	b.WriteString(":")
	if f.Date != nil {
		b.WriteString(f.Date.Format(time.DateOnly))
	}
	return b.String()
}
