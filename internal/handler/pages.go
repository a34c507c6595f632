package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/silversons/circus-site/internal/domain"
	"github.com/silversons/circus-site/internal/seo"
)

type homeData struct {
	Towns []domain.TownRecord
}

type townData struct {
	Town   domain.TownRecord
	JSONLD template.JS
}

type errorData struct {
	Title   string
	Message string
}

// Home handles GET /: the town listing page.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	towns, err := s.towns.Towns(r.Context())
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderPage(w, http.StatusOK, "home", homeData{Towns: towns})
}

// TownPage handles GET /circus-in/{slug}: one town's listing with embedded
// schema.org Event markup.
func (s *Server) TownPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	town, err := s.towns.TownBySlug(r.Context(), slug)
	if err != nil {
		s.renderError(w, err)
		return
	}

	jsonld, err := seo.TownEventsJSONLD(town)
	if err != nil {
		s.renderError(w, err)
		return
	}
	s.renderPage(w, http.StatusOK, "town", townData{
		Town:   town,
		JSONLD: template.JS(jsonld),
	})
}

// renderPage executes a page template into a buffer first, so a template
// failure becomes a clean 500 instead of a half-written response.
func (s *Server) renderPage(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := s.templates[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("render page", "page", page, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError maps a service error onto the right error page.
func (s *Server) renderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.errorPage(w, http.StatusNotFound, "Town not found",
			"The circus is not visiting that town right now.")
	case errors.Is(err, domain.ErrUnavailable):
		s.logger.Error("towns unavailable", "error", err)
		s.errorPage(w, http.StatusServiceUnavailable, "Hold on a moment",
			"Our ticketing listings are briefly unavailable. Please try again shortly.")
	default:
		s.logger.Error("page handler", "error", err)
		s.errorPage(w, http.StatusInternalServerError, "Something went wrong",
			"An unexpected error occurred. Please try again.")
	}
}

func (s *Server) errorPage(w http.ResponseWriter, status int, title, message string) {
	s.renderPage(w, status, "error", errorData{Title: title, Message: message})
}
