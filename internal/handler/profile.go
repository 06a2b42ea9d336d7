package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/habit-trail/internal/domain"
)

// GetProfile handles GET /profile.
// Returns 404 until onboarding has been completed.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.profile.Get(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "profile not found")
			return
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(p))
}

// Onboard handles POST /profile.
func (s *Server) Onboard(w http.ResponseWriter, r *http.Request) {
	var req OnboardRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.profile.Onboard(r.Context(), req.Nickname, req.Destination.toDomain())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, profileToResponse(p))
}

// RenameProfile handles PATCH /profile.
func (s *Server) RenameProfile(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	p, err := s.profile.Rename(r.Context(), req.Nickname)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(w, "profile not found")
			return
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(p))
}
