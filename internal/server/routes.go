package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Handler returns the router with all middleware applied.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.AllowAll().Handler)
	router.Use(s.withTraceID)
	router.Use(withLogging)

	router.Post("/split", s.split)
	router.Post("/join", s.join)
	router.Get("/version", s.version)

	return router
}
