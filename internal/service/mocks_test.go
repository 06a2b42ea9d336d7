package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/habit-trail/internal/domain"
	"github.com/pkordes/habit-trail/internal/repo"
	"github.com/pkordes/habit-trail/internal/service"
)

// mockDestinationRepo is a hand-written test double for repo.DestinationRepo.
// Each method is a function field; set only the ones your test needs.
type mockDestinationRepo struct {
	create          func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	getByID         func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	list            func(ctx context.Context) ([]domain.Destination, error)
	updateFrequency func(ctx context.Context, id uuid.UUID, f domain.Frequency) (domain.Destination, error)
	delete          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDestinationRepo) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.getByID(ctx, id)
}
func (m *mockDestinationRepo) List(ctx context.Context) ([]domain.Destination, error) {
	return m.list(ctx)
}
func (m *mockDestinationRepo) UpdateFrequency(ctx context.Context, id uuid.UUID, f domain.Frequency) (domain.Destination, error) {
	return m.updateFrequency(ctx, id, f)
}
func (m *mockDestinationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// mockVisitRepo is a hand-written test double for repo.VisitRepo.
type mockVisitRepo struct {
	create            func(ctx context.Context, v domain.Visit) (domain.Visit, error)
	createOncePerDay  func(ctx context.Context, v domain.Visit, dayStart, dayEnd time.Time) (domain.Visit, error)
	list              func(ctx context.Context) ([]domain.Visit, error)
	listByDestination func(ctx context.Context, id uuid.UUID) ([]domain.Visit, error)
}

func (m *mockVisitRepo) Create(ctx context.Context, v domain.Visit) (domain.Visit, error) {
	return m.create(ctx, v)
}
func (m *mockVisitRepo) CreateOncePerDay(ctx context.Context, v domain.Visit, dayStart, dayEnd time.Time) (domain.Visit, error) {
	return m.createOncePerDay(ctx, v, dayStart, dayEnd)
}
func (m *mockVisitRepo) List(ctx context.Context) ([]domain.Visit, error) {
	return m.list(ctx)
}
func (m *mockVisitRepo) ListByDestination(ctx context.Context, id uuid.UUID) ([]domain.Visit, error) {
	return m.listByDestination(ctx, id)
}

// mockProfileStore is a hand-written test double for repo.ProfileStore.
type mockProfileStore struct {
	load   func(ctx context.Context) (domain.ProfileState, error)
	create func(ctx context.Context, state domain.ProfileState) error
	rename func(ctx context.Context, nickname string) error
}

func (m *mockProfileStore) Load(ctx context.Context) (domain.ProfileState, error) {
	return m.load(ctx)
}
func (m *mockProfileStore) Create(ctx context.Context, state domain.ProfileState) error {
	return m.create(ctx, state)
}
func (m *mockProfileStore) Rename(ctx context.Context, nickname string) error {
	return m.rename(ctx, nickname)
}

// compile-time checks: the mocks must satisfy the repo interfaces.
var (
	_ repo.DestinationRepo = (*mockDestinationRepo)(nil)
	_ repo.VisitRepo       = (*mockVisitRepo)(nil)
	_ repo.ProfileStore    = (*mockProfileStore)(nil)
)

// memCache is an in-memory service.StatsCache that counts its calls.
// Like the Redis cache, Invalidate moves to a new generation and leaves
// older entries in place.
type memCache struct {
	entries     map[string]domain.Stats
	gen         int64
	gets        int
	invalidated int
	err         error
}

func newMemCache() *memCache {
	return &memCache{entries: map[string]domain.Stats{}}
}

func (c *memCache) Get(_ context.Context, key string) (domain.Stats, int64, bool, error) {
	c.gets++
	if c.err != nil {
		return domain.Stats{}, 0, false, c.err
	}
	s, ok := c.entries[fmt.Sprintf("%d:%s", c.gen, key)]
	return s, c.gen, ok, nil
}

func (c *memCache) Set(_ context.Context, gen int64, key string, s domain.Stats) error {
	if c.err != nil {
		return c.err
	}
	c.entries[fmt.Sprintf("%d:%s", gen, key)] = s
	return nil
}

func (c *memCache) Invalidate(_ context.Context) error {
	c.invalidated++
	c.gen++
	return c.err
}

var _ service.StatsCache = (*memCache)(nil)

// ---- shared fixtures -------------------------------------------------------

var jst = time.FixedZone("JST", 9*60*60)

// fixedNow is Thursday 2025-11-20 10:00 JST; its week runs Sun 16 .. Sat 22.
var fixedNow = time.Date(2025, 11, 20, 10, 0, 0, 0, jst)

func fixedClock() service.Clock {
	return service.Clock{Now: func() time.Time { return fixedNow }, Location: jst}
}

func at(day, hour int) time.Time {
	return time.Date(2025, 11, day, hour, 0, 0, 0, jst)
}

func gym() domain.Destination {
	return domain.Destination{
		ID:           uuid.MustParse("00000000-0000-0000-0000-00000000000a"),
		Name:         "Riverside Gym",
		Address:      "1-2-3 Marunouchi",
		Latitude:     35.6812,
		Longitude:    139.7671,
		RadiusMeters: 50,
		Frequency:    domain.Frequency{Days: []int{1, 3, 4}, Time: "07:30"},
	}
}

func library() domain.Destination {
	return domain.Destination{
		ID:           uuid.MustParse("00000000-0000-0000-0000-00000000000b"),
		Name:         "City Library",
		Latitude:     35.6895,
		Longitude:    139.6917,
		RadiusMeters: 50,
		Frequency:    domain.Frequency{Days: []int{6}, Time: "14:00"},
	}
}

func visit(destID uuid.UUID, t time.Time) domain.Visit {
	return domain.Visit{ID: uuid.New(), DestinationID: destID, VisitedAt: t}
}

func destRepoOf(dests ...domain.Destination) *mockDestinationRepo {
	return &mockDestinationRepo{
		list: func(context.Context) ([]domain.Destination, error) { return dests, nil },
		getByID: func(_ context.Context, id uuid.UUID) (domain.Destination, error) {
			for _, d := range dests {
				if d.ID == id {
					return d, nil
				}
			}
			return domain.Destination{}, domain.ErrNotFound
		},
	}
}

// visitRepoOf serves visits from memory. CreateOncePerDay appends to the
// same slice, so a second check-in on the same day conflicts.
func visitRepoOf(visits ...domain.Visit) *mockVisitRepo {
	m := &mockVisitRepo{
		list: func(context.Context) ([]domain.Visit, error) { return visits, nil },
		listByDestination: func(_ context.Context, id uuid.UUID) ([]domain.Visit, error) {
			var out []domain.Visit
			for _, v := range visits {
				if v.DestinationID == id {
					out = append(out, v)
				}
			}
			return out, nil
		},
		create: func(_ context.Context, v domain.Visit) (domain.Visit, error) {
			v.ID = uuid.New()
			return v, nil
		},
	}
	m.createOncePerDay = func(_ context.Context, v domain.Visit, dayStart, dayEnd time.Time) (domain.Visit, error) {
		for _, old := range visits {
			if old.DestinationID == v.DestinationID && !old.VisitedAt.Before(dayStart) && old.VisitedAt.Before(dayEnd) {
				return domain.Visit{}, domain.ErrConflict
			}
		}
		v.ID = uuid.New()
		visits = append(visits, v)
		return v, nil
	}
	return m
}
