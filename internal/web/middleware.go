package web

import (
	"errors"
	"net/http"
	"time"

	"swiss/internal/config"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/middleware"
)

func requestLogger(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info(
				"request",
				"method", r.Method, "path", r.URL.Path,
				"status", ww.Status(), "bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"id", middleware.GetReqID(r.Context()),
			)
		}()

		h.ServeHTTP(ww, r)
	})
}

// limit rejects requests once the server-wide token bucket is empty.
func (s *Server) limit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			s.error(w, r, errors.New("too many requests"), http.StatusTooManyRequests)
			return
		}

		h.ServeHTTP(w, r)
	})
}

// signed only lets through requests whose URL was signed with the web token.
func (s *Server) signed(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := s.conf.CheckURL(r.URL.RequestURI())
		switch {
		case err == nil:
			h.ServeHTTP(w, r)
		case errors.Is(err, config.ErrTokenExpired), errors.Is(err, config.ErrInvalidToken):
			s.error(w, r, err, http.StatusForbidden)
		default:
			s.error(w, r, err, http.StatusInternalServerError)
		}
	})
}
