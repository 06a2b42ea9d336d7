package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts every endpoint of s on a chi router.
// limitWrites, when non-nil, wraps the check-in endpoint.
func NewRouter(s *Server, limitWrites func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if s.openAPI != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	r.Route("/profile", func(r chi.Router) {
		r.Get("/", s.GetProfile)
		r.Post("/", s.Onboard)
		r.Patch("/", s.RenameProfile)
	})

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/", s.ListDestinations)
		r.Post("/", s.CreateDestination)

		r.Route("/{destinationId}", func(r chi.Router) {
			r.Get("/", s.GetDestination)
			r.Delete("/", s.DeleteDestination)
			r.Put("/frequency", s.UpdateFrequency)
			r.Get("/proximity", s.GetProximity)

			checkIn := http.Handler(http.HandlerFunc(s.CheckIn))
			if limitWrites != nil {
				checkIn = limitWrites(checkIn)
			}
			r.Method(http.MethodPost, "/check-ins", checkIn)
		})
	})

	r.Get("/today", s.GetToday)
	r.Get("/map", s.GetMap)
	r.Get("/visits", s.ListVisits)
	r.Get("/stats", s.GetStats)
	r.Get("/export", s.GetExport)

	return r
}
