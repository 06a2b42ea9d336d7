package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/habit-trail/internal/domain"
	"github.com/pkordes/habit-trail/internal/repo"
)

const maxNicknameLength = 30

// ProfileService implements onboarding and the user's nickname.
type ProfileService struct {
	store         repo.ProfileStore
	cache         StatsCache
	defaultRadius float64
}

// NewProfileService constructs a ProfileService backed by the provided ProfileStore.
func NewProfileService(store repo.ProfileStore, cache StatsCache, defaultRadius float64) *ProfileService {
	return &ProfileService{store: store, cache: cache, defaultRadius: defaultRadius}
}

// Get returns the stored profile, or domain.ErrNotFound before onboarding.
func (s *ProfileService) Get(ctx context.Context) (domain.ProfileState, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return domain.ProfileState{}, fmt.Errorf("service.ProfileService.Get: %w", err)
	}
	return state, nil
}

// Onboard stores the nickname together with the first destination.
// Destinations created before onboarding are kept.
// Returns domain.ErrConflict if onboarding already happened.
func (s *ProfileService) Onboard(ctx context.Context, nickname string, first domain.Destination) (domain.ProfileState, error) {
	nickname, err := normalizeNickname(nickname)
	if err != nil {
		return domain.ProfileState{}, fmt.Errorf("service.ProfileService.Onboard: %w", err)
	}
	first, err = normalizeDestination(first, s.defaultRadius)
	if err != nil {
		return domain.ProfileState{}, fmt.Errorf("service.ProfileService.Onboard: %w", err)
	}

	state := domain.ProfileState{Nickname: nickname, Destinations: []domain.Destination{first}}
	if err := s.store.Create(ctx, state); err != nil {
		return domain.ProfileState{}, fmt.Errorf("service.ProfileService.Onboard: %w", err)
	}
	invalidate(ctx, s.cache)
	slog.InfoContext(ctx, "profile onboarded", "destination", first.Name)

	return s.Get(ctx)
}

// Rename replaces the nickname. Destinations are not rewritten.
func (s *ProfileService) Rename(ctx context.Context, nickname string) (domain.ProfileState, error) {
	nickname, err := normalizeNickname(nickname)
	if err != nil {
		return domain.ProfileState{}, fmt.Errorf("service.ProfileService.Rename: %w", err)
	}
	if err := s.store.Rename(ctx, nickname); err != nil {
		return domain.ProfileState{}, fmt.Errorf("service.ProfileService.Rename: %w", err)
	}
	return s.Get(ctx)
}

func normalizeNickname(s string) (string, error) {
	s = cleanText(s)
	if s == "" {
		return "", fmt.Errorf("%w: nickname is required", domain.ErrValidation)
	}
	if tooLong(s, maxNicknameLength) {
		return "", fmt.Errorf("%w: nickname must be at most %d characters", domain.ErrValidation, maxNicknameLength)
	}
	return s, nil
}
