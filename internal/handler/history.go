package handler

import "net/http"

// ListVisits handles GET /visits.
// Supports ?period=week|month|all, ?destination_id=, ?date=YYYY-MM-DD and
// ?page= / ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListVisits(w http.ResponseWriter, r *http.Request) {
	f, err := historyFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := pagination(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := s.history.Visits(r.Context(), f, p)
	if err != nil {
		writeError(w, r, err)
		return
	}

	data := make([]VisitResponse, 0, len(page.Items))
	for _, v := range page.Items {
		data = append(data, visitToResponse(v))
	}
	writeJSON(w, http.StatusOK, VisitListResponse{
		Data: data,
		Pagination: Pagination{
			Page:  page.Page.Page,
			Limit: page.Page.Limit,
			Total: page.Total,
		},
	})
}

// GetStats handles GET /stats with the same filters as /visits.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	f, err := historyFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	stats, err := s.history.Stats(r.Context(), f)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(stats))
}

// GetMap handles GET /map.
func (s *Server) GetMap(w http.ResponseWriter, r *http.Request) {
	view, err := s.history.MapView(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	markers := make([]MapMarkerResponse, 0, len(view.Markers))
	for _, m := range view.Markers {
		markers = append(markers, MapMarkerResponse{
			Destination:   destinationToResponse(m.Destination),
			VisitCount:    m.VisitCount,
			LastVisitedAt: m.LastVisitedAt,
		})
	}
	writeJSON(w, http.StatusOK, MapResponse{
		Center: MapCenter{
			Latitude:  view.Viewport.Center.Latitude,
			Longitude: view.Viewport.Center.Longitude,
		},
		Zoom:    view.Viewport.Zoom,
		Markers: markers,
	})
}
