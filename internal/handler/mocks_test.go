package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/habit-trail/internal/domain"
	"github.com/pkordes/habit-trail/internal/handler"
	"github.com/pkordes/habit-trail/internal/service"
)

// Test doubles for the handler servicer interfaces.
// Set only the method fields your test needs.

type mockProfileServicer struct {
	get     func(ctx context.Context) (domain.ProfileState, error)
	onboard func(ctx context.Context, nickname string, first domain.Destination) (domain.ProfileState, error)
	rename  func(ctx context.Context, nickname string) (domain.ProfileState, error)
}

func (m *mockProfileServicer) Get(ctx context.Context) (domain.ProfileState, error) {
	return m.get(ctx)
}
func (m *mockProfileServicer) Onboard(ctx context.Context, nickname string, first domain.Destination) (domain.ProfileState, error) {
	return m.onboard(ctx, nickname, first)
}
func (m *mockProfileServicer) Rename(ctx context.Context, nickname string) (domain.ProfileState, error) {
	return m.rename(ctx, nickname)
}

type mockDestinationServicer struct {
	create          func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	get             func(ctx context.Context, id uuid.UUID) (domain.Destination, error)
	list            func(ctx context.Context) ([]domain.Destination, error)
	updateFrequency func(ctx context.Context, id uuid.UUID, f domain.Frequency) (domain.Destination, error)
	delete          func(ctx context.Context, id uuid.UUID) error
}

func (m *mockDestinationServicer) Create(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.create(ctx, d)
}
func (m *mockDestinationServicer) Get(ctx context.Context, id uuid.UUID) (domain.Destination, error) {
	return m.get(ctx, id)
}
func (m *mockDestinationServicer) List(ctx context.Context) ([]domain.Destination, error) {
	return m.list(ctx)
}
func (m *mockDestinationServicer) UpdateFrequency(ctx context.Context, id uuid.UUID, f domain.Frequency) (domain.Destination, error) {
	return m.updateFrequency(ctx, id, f)
}
func (m *mockDestinationServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockCheckInServicer struct {
	proximity func(ctx context.Context, id uuid.UUID, pos *domain.Position) (service.ProximityResult, error)
	checkIn   func(ctx context.Context, id uuid.UUID, pos *domain.Position, note string) (service.VisitRecord, error)
	today     func(ctx context.Context, pos *domain.Position) ([]service.TodayItem, error)
}

func (m *mockCheckInServicer) Proximity(ctx context.Context, id uuid.UUID, pos *domain.Position) (service.ProximityResult, error) {
	return m.proximity(ctx, id, pos)
}
func (m *mockCheckInServicer) CheckIn(ctx context.Context, id uuid.UUID, pos *domain.Position, note string) (service.VisitRecord, error) {
	return m.checkIn(ctx, id, pos, note)
}
func (m *mockCheckInServicer) Today(ctx context.Context, pos *domain.Position) ([]service.TodayItem, error) {
	return m.today(ctx, pos)
}

type mockHistoryServicer struct {
	visits  func(ctx context.Context, f domain.HistoryFilter, p domain.PaginationParams) (service.VisitPage, error)
	stats   func(ctx context.Context, f domain.HistoryFilter) (domain.Stats, error)
	export  func(ctx context.Context, f domain.HistoryFilter) ([]domain.ExportRow, error)
	mapView func(ctx context.Context) (service.MapView, error)
}

func (m *mockHistoryServicer) Visits(ctx context.Context, f domain.HistoryFilter, p domain.PaginationParams) (service.VisitPage, error) {
	return m.visits(ctx, f, p)
}
func (m *mockHistoryServicer) Stats(ctx context.Context, f domain.HistoryFilter) (domain.Stats, error) {
	return m.stats(ctx, f)
}
func (m *mockHistoryServicer) Export(ctx context.Context, f domain.HistoryFilter) ([]domain.ExportRow, error) {
	return m.export(ctx, f)
}
func (m *mockHistoryServicer) MapView(ctx context.Context) (service.MapView, error) {
	return m.mapView(ctx)
}

// compile-time checks: the mocks must satisfy the handler interfaces.
var (
	_ handler.ProfileServicer     = (*mockProfileServicer)(nil)
	_ handler.DestinationServicer = (*mockDestinationServicer)(nil)
	_ handler.CheckInServicer     = (*mockCheckInServicer)(nil)
	_ handler.HistoryServicer     = (*mockHistoryServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// mocks bundles one of each servicer; tests fill in the fields they need.
type mocks struct {
	profile      *mockProfileServicer
	destinations *mockDestinationServicer
	checkIns     *mockCheckInServicer
	history      *mockHistoryServicer
}

func newMocks() *mocks {
	return &mocks{
		profile:      &mockProfileServicer{},
		destinations: &mockDestinationServicer{},
		checkIns:     &mockCheckInServicer{},
		history:      &mockHistoryServicer{},
	}
}

// newHTTPHandler wires a Server with the mocks into the router, the same way
// main.go wires it in production.
func newHTTPHandler(m *mocks) http.Handler {
	srv := handler.NewServer(m.profile, m.destinations, m.checkIns, m.history, []byte("openapi: 3.0.3\n"))
	return handler.NewRouter(srv, nil)
}

func gymFixture() domain.Destination {
	return domain.Destination{
		ID:           uuid.MustParse("00000000-0000-0000-0000-00000000000a"),
		Name:         "Riverside Gym",
		Address:      "1-2-3 Marunouchi",
		Latitude:     35.6812,
		Longitude:    139.7671,
		RadiusMeters: 50,
		Frequency:    domain.Frequency{Days: []int{1, 3, 5}, Time: "07:30"},
		CreatedAt:    time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, body *bytes.Buffer) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp.Error
}
