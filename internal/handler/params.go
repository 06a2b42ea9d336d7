package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/habit-trail/internal/domain"
)

// destinationID binds the {destinationId} path parameter.
func destinationID(r *http.Request) (uuid.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "destinationId", chi.URLParam(r, "destinationId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: destinationId must be a UUID", domain.ErrValidation)
	}
	return id, nil
}

// queryParam binds an optional form-style query parameter into dest.
func queryParam(q url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, q, dest); err != nil {
		return fmt.Errorf("%w: invalid %s parameter", domain.ErrValidation, name)
	}
	return nil
}

// positionQuery reads the optional lat/lng query pair.
func positionQuery(r *http.Request) (*domain.Position, error) {
	var lat, lng *float64
	q := r.URL.Query()
	if err := queryParam(q, "lat", &lat); err != nil {
		return nil, err
	}
	if err := queryParam(q, "lng", &lng); err != nil {
		return nil, err
	}
	return pairPosition(lat, lng)
}

// historyFilter reads period, destination_id and date.
func historyFilter(r *http.Request) (domain.HistoryFilter, error) {
	var (
		period *string
		destID *openapi_types.UUID
		date   *openapi_types.Date
		f      domain.HistoryFilter
	)
	q := r.URL.Query()
	if err := queryParam(q, "period", &period); err != nil {
		return f, err
	}
	if err := queryParam(q, "destination_id", &destID); err != nil {
		return f, err
	}
	if err := queryParam(q, "date", &date); err != nil {
		return f, err
	}

	if period != nil {
		f.Period = *period
	}
	if destID != nil {
		f.DestinationID = *destID
	}
	if date != nil {
		d := date.Time
		f.Date = &d
	}
	return f, nil
}

// pagination reads page and limit.
func pagination(r *http.Request) (domain.PaginationParams, error) {
	var page, limit *int
	q := r.URL.Query()
	if err := queryParam(q, "page", &page); err != nil {
		return domain.PaginationParams{}, err
	}
	if err := queryParam(q, "limit", &limit); err != nil {
		return domain.PaginationParams{}, err
	}
	return domain.NewPaginationParams(page, limit), nil
}
