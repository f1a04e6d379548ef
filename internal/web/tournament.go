package web

import (
	"errors"
	"net/http"
	"time"

	"swiss/internal/back"
)

func (s *Server) getStandings(w http.ResponseWriter, r *http.Request) {
	standings, err := s.back.Standings(r.Context())
	if err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, standings)
}

func (s *Server) getPairings(w http.ResponseWriter, r *http.Request) {
	pairings, err := s.back.Pairings(r.Context())
	if errors.Is(err, back.ErrOddPlayerCount) {
		s.error(w, r, err, http.StatusConflict)
		return
	}

	if err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, pairings)
}

func (s *Server) getRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := s.back.Ratings(r.Context(), time.Now())
	if err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, ratings)
}
