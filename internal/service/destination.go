package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/habit-trail/internal/domain"
	"github.com/pkordes/habit-trail/internal/repo"
)

const (
	maxNameLength    = 100
	maxAddressLength = 200
)

// DestinationService implements business logic for destination operations.
type DestinationService struct {
	repo          repo.DestinationRepo
	cache         StatsCache
	defaultRadius float64
}

// NewDestinationService constructs a DestinationService. defaultRadius is
// applied to destinations created without a radius of their own.
func NewDestinationService(r repo.DestinationRepo, cache StatsCache, defaultRadius float64) *DestinationService {
	return &DestinationService{repo: r, cache: cache, defaultRadius: defaultRadius}
}

// Create validates and persists a new destination.
func (s *DestinationService) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	d, err := normalizeDestination(d, s.defaultRadius)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Create: %w", err)
	}
	invalidate(ctx, s.cache)
	return created, nil
}

// Get returns a single destination by ID.
func (s *DestinationService) Get(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.Get: %w", err)
	}
	return d, nil
}

// List returns all destinations.
func (s *DestinationService) List(ctx context.Context) ([]domain.Destination, error) {
	dests, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.DestinationService.List: %w", err)
	}
	return dests, nil
}

// UpdateFrequency validates and replaces a destination's weekly schedule.
func (s *DestinationService) UpdateFrequency(ctx context.Context, id uuid.UUID, f domain.Frequency) (domain.Destination, error) {
	f, err := normalizeFrequency(f)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.UpdateFrequency: %w", err)
	}

	d, err := s.repo.UpdateFrequency(ctx, id, f)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.DestinationService.UpdateFrequency: %w", err)
	}
	invalidate(ctx, s.cache)
	return d, nil
}

// Delete removes a destination. Its visits stay in the history.
func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.DestinationService.Delete: %w", err)
	}
	invalidate(ctx, s.cache)
	slog.InfoContext(ctx, "destination deleted", "destination_id", id)
	return nil
}

// normalizeDestination cleans and validates d, filling the default radius.
func normalizeDestination(d domain.Destination, defaultRadius float64) (domain.Destination, error) {
	d.Name = cleanText(d.Name)
	d.Address = cleanText(d.Address)

	if d.Name == "" {
		return domain.Destination{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if tooLong(d.Name, maxNameLength) {
		return domain.Destination{}, fmt.Errorf("%w: name must be at most %d characters", domain.ErrValidation, maxNameLength)
	}
	if tooLong(d.Address, maxAddressLength) {
		return domain.Destination{}, fmt.Errorf("%w: address must be at most %d characters", domain.ErrValidation, maxAddressLength)
	}
	if err := validatePosition(d.Position()); err != nil {
		return domain.Destination{}, err
	}
	if d.RadiusMeters == 0 {
		d.RadiusMeters = defaultRadius
	}
	if d.RadiusMeters <= 0 {
		return domain.Destination{}, fmt.Errorf("%w: radius must be positive", domain.ErrValidation)
	}

	f, err := normalizeFrequency(d.Frequency)
	if err != nil {
		return domain.Destination{}, err
	}
	d.Frequency = f
	return d, nil
}

// normalizeFrequency requires at least one weekday in 0..6 and an HH:MM time.
// Days are returned sorted and deduplicated.
func normalizeFrequency(f domain.Frequency) (domain.Frequency, error) {
	if len(f.Days) == 0 {
		return domain.Frequency{}, fmt.Errorf("%w: at least one weekday is required", domain.ErrValidation)
	}
	for _, d := range f.Days {
		if d < 0 || d > 6 {
			return domain.Frequency{}, fmt.Errorf("%w: weekday %d is outside 0..6", domain.ErrValidation, d)
		}
	}
	if !domain.ValidClockTime(f.Time) {
		return domain.Frequency{}, fmt.Errorf("%w: time must be HH:MM", domain.ErrValidation)
	}

	days := slices.Clone(f.Days)
	slices.Sort(days)
	return domain.Frequency{Days: slices.Compact(days), Time: f.Time}, nil
}

func validatePosition(p domain.Position) error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrValidation)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrValidation)
	}
	return nil
}
