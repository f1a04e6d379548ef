package web

import (
	"errors"
	"net/http"

	"swiss/internal/store"
	"swiss/internal/util"
)

type reportMatchRequest struct {
	WinnerID int64  `json:"winner_id"`
	LoserID  int64  `json:"loser_id"`
	Ref      string `json:"ref"`
}

func (s *Server) reportMatch(w http.ResponseWriter, r *http.Request) {
	var req reportMatchRequest
	if err := s.decode(w, r, &req); err != nil {
		return
	}

	ref := util.NewUUIDAsBlob()
	if req.Ref != "" {
		var err error
		if ref, err = util.ParseUUIDAsBlob(req.Ref); err != nil {
			s.error(w, r, err, http.StatusBadRequest)
			return
		}
	}

	match, err := s.back.ReportMatchWithRef(r.Context(), ref, req.WinnerID, req.LoserID)
	switch {
	case err == nil:
		s.response(w, http.StatusCreated, match)
	case errors.Is(err, store.ErrUnknownPlayer):
		s.error(w, r, store.ErrUnknownPlayer, http.StatusUnprocessableEntity)
	case errors.Is(err, store.ErrDuplicateMatch):
		s.error(w, r, store.ErrDuplicateMatch, http.StatusConflict)
	default:
		s.error(w, r, err, http.StatusInternalServerError)
	}
}

func (s *Server) clearMatches(w http.ResponseWriter, r *http.Request) {
	if err := s.back.ClearMatches(r.Context()); err != nil {
		s.error(w, r, err, http.StatusInternalServerError)
		return
	}

	noContent(w, r)
}
