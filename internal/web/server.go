// Package web exposes the tournament over a JSON HTTP API.
package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"swiss/internal/back"
	"swiss/internal/config"
	"swiss/internal/util"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"golang.org/x/time/rate"
)

func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", noContent)
	r.Method(http.MethodGet, "/metrics", s.metrics)

	// No pagination.
	r.Route("/v1", func(r chi.Router) {
		r.Get("/players/count", s.countPlayers)
		r.Get("/players/{a}/played/{b}", s.hasPlayed)
		r.Get("/standings", s.getStandings)
		r.Get("/pairings", s.getPairings)
		r.Get("/ratings", s.getRatings)

		r.Group(func(r chi.Router) {
			r.Use(s.limit)
			r.Post("/players", s.registerPlayer)
			r.Post("/matches", s.reportMatch)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.signed)
			r.Delete("/players", s.clearPlayers)
			r.Delete("/matches", s.clearMatches)
		})
	})

	return r
}

type Server struct {
	http    *http.Server
	back    *back.Back
	conf    *config.Config
	metrics http.Handler
	limiter *rate.Limiter
}

// NewServer creates a server listening on the configured address, writes are
// throttled to 10/s with a burst of 20.
func NewServer(b *back.Back, conf *config.Config, metrics http.Handler) *Server {
	s := &Server{
		back:    b,
		conf:    conf,
		metrics: metrics,
		limiter: rate.NewLimiter(10, 20),
	}

	s.http = &http.Server{
		Addr:         conf.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  10 * time.Second,
		Handler:      s.setupRouter(),
	}

	return s
}

// Handler returns the root handler, used for testing.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// Serve listens until done is closed then calls wg.Done, the caller is
// expected to have called wg.Add(1).
func (s *Server) Serve(wg *sync.WaitGroup, done <-chan struct{}) {
	log.Info("starting HTTP server", "address", s.http.Addr)
	defer wg.Done()

	go func() {
		err := s.http.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("HTTP server closed")
			return
		}

		log.Fatal("webserver crashed", "err", err)
	}()

	<-done
	if err := s.http.Close(); err != nil {
		log.Warn("unable to close webserver", "err", err)
	}
}

func (s *Server) response(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(data)
	if err != nil {
		log.Error("unable to marshal response", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(code)

	if _, err := w.Write(response); err != nil {
		log.Error("unable to send response", "err", err)
	}
}

// maxBodySize bounds request bodies, every payload is a handful of fields.
const maxBodySize = 1 << 16

// decode reads a JSON body into v, on failure the error response is already
// sent.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(v)

	var tooLarge *http.MaxBytesError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &tooLarge):
		s.error(w, r, errors.New("body too large"), http.StatusRequestEntityTooLarge)
	default:
		s.error(w, r, errors.New("malformed body"), http.StatusBadRequest)
	}

	return err
}

type errorResponse struct {
	Error string `json:"error"`
}

// error sends err to the client if it is public or if code is a client
// error, anything else is logged and replaced by a generic message.
func (s *Server) error(w http.ResponseWriter, r *http.Request, err error, code int) {
	msg := http.StatusText(code)
	public, isPublic := util.PublicMessage(err)
	switch {
	case isPublic:
		msg = public
	case code < http.StatusInternalServerError:
		msg = err.Error()
	default:
		log.Error("request failed", "path", r.URL.Path, "id", middleware.GetReqID(r.Context()), "err", err)
	}

	s.response(w, code, errorResponse{Error: msg})
}
