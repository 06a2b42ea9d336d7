package handler

import "net/http"

// GetProximity handles GET /destinations/{destinationId}/proximity?lat=&lng=.
// Without lat/lng the status is "unknown".
func (s *Server) GetProximity(w http.ResponseWriter, r *http.Request) {
	id, err := destinationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	pos, err := positionQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	res, err := s.checkIns.Proximity(r.Context(), id, pos)
	if err != nil {
		writeDestinationError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, DestinationProximityResponse{
		Destination: destinationToResponse(res.Destination),
		Proximity:   proximityToResponse(res.Proximity, res.Destination.RadiusMeters),
	})
}

// CheckIn handles POST /destinations/{destinationId}/check-ins.
// Responds 422 out_of_range when too far, 422 position_unknown without a
// position and 409 when the destination was already visited today.
func (s *Server) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, err := destinationID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req CheckInRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	pos, err := req.position()
	if err != nil {
		writeError(w, r, err)
		return
	}

	v, err := s.checkIns.CheckIn(r.Context(), id, pos, req.Note)
	if err != nil {
		writeDestinationError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, visitToResponse(v))
}

// GetToday handles GET /today?lat=&lng=.
func (s *Server) GetToday(w http.ResponseWriter, r *http.Request) {
	pos, err := positionQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	items, err := s.checkIns.Today(r.Context(), pos)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]TodayItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, TodayItemResponse{
			Destination: destinationToResponse(it.Destination),
			Completed:   it.Completed,
			Proximity:   proximityToResponse(it.Proximity, it.Destination.RadiusMeters),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
