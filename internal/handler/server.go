// Package handler implements the HTTP handlers for the Habit Trail API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (profile.go, destination.go, etc.) but share the same Server struct so
// they can access its dependencies. NewRouter mounts them on a chi router.
package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/pkordes/habit-trail/internal/domain"
	"github.com/pkordes/habit-trail/internal/service"
)

// The interfaces below are defined in the consumer package so handler tests
// can inject mocks without touching the database or service layer.

// ProfileServicer defines the onboarding and nickname operations.
type ProfileServicer interface {
	Get(ctx context.Context) (domain.ProfileState, error)
	Onboard(ctx context.Context, nickname string, first domain.Destination) (domain.ProfileState, error)
	Rename(ctx context.Context, nickname string) (domain.ProfileState, error)
}

// DestinationServicer defines the destination management operations.
type DestinationServicer interface {
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	List(ctx context.Context) ([]domain.Destination, error)
	UpdateFrequency(ctx context.Context, id uuid.UUID, f domain.Frequency) (domain.Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CheckInServicer defines the proximity, check-in and today operations.
type CheckInServicer interface {
	Proximity(ctx context.Context, id uuid.UUID, pos *domain.Position) (service.ProximityResult, error)
	CheckIn(ctx context.Context, id uuid.UUID, pos *domain.Position, note string) (service.VisitRecord, error)
	Today(ctx context.Context, pos *domain.Position) ([]service.TodayItem, error)
}

// HistoryServicer defines the read-only history operations.
type HistoryServicer interface {
	Visits(ctx context.Context, f domain.HistoryFilter, p domain.PaginationParams) (service.VisitPage, error)
	Stats(ctx context.Context, f domain.HistoryFilter) (domain.Stats, error)
	Export(ctx context.Context, f domain.HistoryFilter) ([]domain.ExportRow, error)
	MapView(ctx context.Context) (service.MapView, error)
}

// Server holds the dependencies of every endpoint.
type Server struct {
	profile      ProfileServicer
	destinations DestinationServicer
	checkIns     CheckInServicer
	history      HistoryServicer
	openAPI      []byte
}

// NewServer constructs the Server with all its dependencies.
// openAPI is the document served at GET /openapi.yaml; nil disables the route.
func NewServer(profile ProfileServicer, destinations DestinationServicer, checkIns CheckInServicer, history HistoryServicer, openAPI []byte) *Server {
	return &Server{
		profile:      profile,
		destinations: destinations,
		checkIns:     checkIns,
		history:      history,
		openAPI:      openAPI,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil, nil)
}
