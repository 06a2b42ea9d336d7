package handler

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/habit-trail/internal/analytics"
	"github.com/pkordes/habit-trail/internal/domain"
	"github.com/pkordes/habit-trail/internal/service"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// --- requests ---------------------------------------------------------------

// FrequencyRequest is the weekly schedule of a destination.
type FrequencyRequest struct {
	Days []int  `json:"days" validate:"required,min=1,dive,min=0,max=6"`
	Time string `json:"time" validate:"required,hhmm"`
}

// DestinationRequest is the body of POST /destinations.
// RadiusMeters is optional; the configured default applies when omitted.
type DestinationRequest struct {
	Name         string           `json:"name" validate:"required,max=100"`
	Address      string           `json:"address" validate:"max=200"`
	Latitude     *float64         `json:"latitude" validate:"required,lat"`
	Longitude    *float64         `json:"longitude" validate:"required,lng"`
	RadiusMeters *float64         `json:"radius_meters,omitempty" validate:"omitempty,gt=0,max=5000"`
	Frequency    FrequencyRequest `json:"frequency"`
}

// OnboardRequest is the body of POST /profile.
type OnboardRequest struct {
	Nickname    string             `json:"nickname" validate:"required,max=30"`
	Destination DestinationRequest `json:"destination"`
}

// RenameRequest is the body of PATCH /profile.
type RenameRequest struct {
	Nickname string `json:"nickname" validate:"required,max=30"`
}

// CheckInRequest is the body of POST /destinations/{destinationId}/check-ins.
// Latitude and longitude are given together or not at all; omitting both
// reports an unknown position rather than a malformed request.
type CheckInRequest struct {
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,lat"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,lng"`
	Note      string   `json:"note" validate:"max=500"`
}

func (req DestinationRequest) toDomain() domain.Destination {
	d := domain.Destination{
		Name:      req.Name,
		Address:   req.Address,
		Frequency: domain.Frequency{Days: req.Frequency.Days, Time: req.Frequency.Time},
	}
	if req.Latitude != nil {
		d.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		d.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		d.RadiusMeters = *req.RadiusMeters
	}
	return d
}

func (req CheckInRequest) position() (*domain.Position, error) {
	return pairPosition(req.Latitude, req.Longitude)
}

// pairPosition builds a position from optional coordinates. Both nil means
// unknown; exactly one nil is a validation error.
func pairPosition(lat, lng *float64) (*domain.Position, error) {
	switch {
	case lat == nil && lng == nil:
		return nil, nil
	case lat == nil || lng == nil:
		return nil, fmt.Errorf("%w: latitude and longitude must be given together", domain.ErrValidation)
	}
	return &domain.Position{Latitude: *lat, Longitude: *lng}, nil
}

// --- responses --------------------------------------------------------------

// FrequencyResponse mirrors FrequencyRequest.
type FrequencyResponse struct {
	Days []int  `json:"days"`
	Time string `json:"time"`
}

// DestinationResponse is a stored destination.
type DestinationResponse struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	RadiusMeters float64           `json:"radius_meters"`
	Frequency    FrequencyResponse `json:"frequency"`
	CreatedAt    time.Time         `json:"created_at"`
}

// ProfileResponse is the body of the /profile endpoints.
type ProfileResponse struct {
	Nickname     string                `json:"nickname"`
	Destinations []DestinationResponse `json:"destinations"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ProximityResponse describes the caller's distance to a destination.
// Distance fields are omitted when the position is unknown.
type ProximityResponse struct {
	Status         string   `json:"status"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
	DistanceLabel  *string  `json:"distance_label,omitempty"`
	RadiusMeters   float64  `json:"radius_meters"`
}

// DestinationProximityResponse is the body of GET .../proximity.
type DestinationProximityResponse struct {
	Destination DestinationResponse `json:"destination"`
	Proximity   ProximityResponse   `json:"proximity"`
}

// TodayItemResponse is one destination scheduled for today.
type TodayItemResponse struct {
	Destination DestinationResponse `json:"destination"`
	Completed   bool                `json:"completed"`
	Proximity   ProximityResponse   `json:"proximity"`
}

// VisitResponse is a single visit with its destination name resolved.
type VisitResponse struct {
	ID                 uuid.UUID `json:"id"`
	DestinationID      uuid.UUID `json:"destination_id"`
	DestinationName    string    `json:"destination_name"`
	DestinationDeleted bool      `json:"destination_deleted"`
	VisitedAt          time.Time `json:"visited_at"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	Note               string    `json:"note,omitempty"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// VisitListResponse is the body of GET /visits.
type VisitListResponse struct {
	Data       []VisitResponse `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// StatsResponse is the body of GET /stats. Visited dates are calendar dates.
type StatsResponse struct {
	TotalVisits  int                      `json:"total_visits"`
	MostVisited  *domain.MostVisited      `json:"most_visited"`
	Streak       int                      `json:"streak"`
	Rates        []domain.DestinationRate `json:"rates"`
	OverallRate  float64                  `json:"overall_rate"`
	VisitedDates []openapi_types.Date     `json:"visited_dates"`
}

// MapCenter is a latitude/longitude pair.
type MapCenter struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MapMarkerResponse is one destination on the map.
type MapMarkerResponse struct {
	Destination   DestinationResponse `json:"destination"`
	VisitCount    int                 `json:"visit_count"`
	LastVisitedAt *time.Time          `json:"last_visited_at"`
}

// MapResponse is the body of GET /map.
type MapResponse struct {
	Center  MapCenter           `json:"center"`
	Zoom    int                 `json:"zoom"`
	Markers []MapMarkerResponse `json:"markers"`
}

// ExportRowResponse is one row of the JSON export.
type ExportRowResponse struct {
	VisitID         string    `json:"visit_id"`
	VisitedAt       time.Time `json:"visited_at"`
	DestinationID   string    `json:"destination_id"`
	DestinationName string    `json:"destination_name"`
	Address         string    `json:"address"`
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Note            string    `json:"note"`
}

// --- mapping helpers --------------------------------------------------------

func destinationToResponse(d domain.Destination) DestinationResponse {
	days := d.Frequency.Days
	if days == nil {
		days = []int{}
	}
	return DestinationResponse{
		ID:           d.ID,
		Name:         d.Name,
		Address:      d.Address,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
		RadiusMeters: d.RadiusMeters,
		Frequency:    FrequencyResponse{Days: days, Time: d.Frequency.Time},
		CreatedAt:    d.CreatedAt,
	}
}

func destinationsToResponse(dests []domain.Destination) []DestinationResponse {
	out := make([]DestinationResponse, 0, len(dests))
	for _, d := range dests {
		out = append(out, destinationToResponse(d))
	}
	return out
}

func profileToResponse(p domain.ProfileState) ProfileResponse {
	return ProfileResponse{
		Nickname:     p.Nickname,
		Destinations: destinationsToResponse(p.Destinations),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func proximityToResponse(p analytics.Proximity, radius float64) ProximityResponse {
	resp := ProximityResponse{Status: p.Status.String(), RadiusMeters: radius}
	if p.Known() {
		dist := p.DistanceMeters
		label := DistanceLabel(dist)
		resp.DistanceMeters = &dist
		resp.DistanceLabel = &label
	}
	return resp
}

func visitToResponse(v service.VisitRecord) VisitResponse {
	return VisitResponse{
		ID:                 v.ID,
		DestinationID:      v.DestinationID,
		DestinationName:    v.DestinationName,
		DestinationDeleted: v.DestinationDeleted,
		VisitedAt:          v.VisitedAt,
		Latitude:           v.Latitude,
		Longitude:          v.Longitude,
		Note:               v.Note,
	}
}

func statsToResponse(s domain.Stats) StatsResponse {
	resp := StatsResponse{
		TotalVisits:  s.TotalVisits,
		Streak:       s.Streak,
		Rates:        s.Rates,
		OverallRate:  s.OverallRate,
		VisitedDates: make([]openapi_types.Date, 0, len(s.VisitedDates)),
	}
	if resp.Rates == nil {
		resp.Rates = []domain.DestinationRate{}
	}
	if s.MostVisited.Count > 0 {
		mv := s.MostVisited
		resp.MostVisited = &mv
	}
	for _, d := range s.VisitedDates {
		resp.VisitedDates = append(resp.VisitedDates, openapi_types.Date{Time: d})
	}
	return resp
}

// DistanceLabel renders a distance for display: whole meters below 1km,
// kilometers with one decimal from there on ("420m", "1.3km").
func DistanceLabel(meters float64) string {
	if math.Round(meters) < 1000 {
		return fmt.Sprintf("%.0fm", meters)
	}
	return fmt.Sprintf("%.1fkm", meters/1000)
}
