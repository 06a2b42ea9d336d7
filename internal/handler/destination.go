package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/habit-trail/internal/domain"
)

// writeDestinationError reports a missing destination by name and
// delegates everything else to writeError.
func writeDestinationError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		notFound(w, "destination not found")
		return
	}
	writeError(w, r, err)
}

// ListDestinations handles GET /destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	dests, err := s.destinations.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, destinationsToResponse(dests))
}

// CreateDestination handles POST /destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var req DestinationRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	created, err := s.destinations.Create(r.Context(), req.toDomain())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, destinationToResponse(created))
}

// GetDestination handles GET /destinations/{destinationId}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, err := destinationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	d, err := s.destinations.Get(r.Context(), id)
	if err != nil {
		writeDestinationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(d))
}

// UpdateFrequency handles PUT /destinations/{destinationId}/frequency.
func (s *Server) UpdateFrequency(w http.ResponseWriter, r *http.Request) {
	id, err := destinationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req FrequencyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	d, err := s.destinations.UpdateFrequency(r.Context(), id, domain.Frequency{Days: req.Days, Time: req.Time})
	if err != nil {
		writeDestinationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(d))
}

// DeleteDestination handles DELETE /destinations/{destinationId}.
// Visits to the destination are kept.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, err := destinationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := s.destinations.Delete(r.Context(), id); err != nil {
		writeDestinationError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
