package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Group(func(r chi.Router) {
		if s.RequestTimeout > 0 {
			r.Use(timeoutMiddleware(s.RequestTimeout))
		}
		r.Route("/users/{username}", func(r chi.Router) {
			r.Use(playerMiddleware)
			r.Get("/", s.handleRecords)
			r.Get("/versus/{opponent}", s.handleVersus)
		})
		r.Get("/leaderboard", s.handleLeaderboard)
	})
	r.Post("/warm", s.handleWarm)

	if s.MetricsHandler != nil {
		r.Handle("/metrics", s.MetricsHandler)
	}
	return r
}
