package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

func (s *Server) countPlayers(w http.ResponseWriter, r *http.Request) {
	count, err := s.back.CountPlayers(r.Context())
	if err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, map[string]int{"count": count})
}

type registerPlayerRequest struct {
	Name string `json:"name"`
}

func (s *Server) registerPlayer(w http.ResponseWriter, r *http.Request) {
	var req registerPlayerRequest
	if err := s.decode(w, r, &req); err != nil {
		return
	}

	player, err := s.back.RegisterPlayer(r.Context(), req.Name)
	if err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusCreated, player)
}

func (s *Server) hasPlayed(w http.ResponseWriter, r *http.Request) {
	a, err := urlID(r, "a")
	if err != nil {
		s.error(w, r, err, http.StatusBadRequest)
		return
	}
	b, err := urlID(r, "b")
	if err != nil {
		s.error(w, r, err, http.StatusBadRequest)
		return
	}

	played, err := s.back.HasPlayed(r.Context(), a, b)
	if err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	s.response(w, http.StatusOK, map[string]bool{"played": played})
}

func (s *Server) clearPlayers(w http.ResponseWriter, r *http.Request) {
	if err := s.back.Reset(r.Context()); err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	noContent(w, r)
}

func urlID(r *http.Request, key string) (int64, error) {
	str := chi.URLParam(r, key)
	id, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, errors.New("invalid player ID: " + strconv.Quote(str))
	}

	return id, nil
}
