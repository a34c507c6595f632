// Package handler implements the HTTP handlers for the circus tour website.
// All handlers are methods on Server; methods are split into files by concern
// (pages.go, api.go, seo.go, health.go) but share the same struct so they can
// access its dependencies.
package handler

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/silversons/circus-site/internal/clock"
	"github.com/silversons/circus-site/internal/domain"
	"github.com/silversons/circus-site/web"
)

// TownLister defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the service layer or the upstream API.
type TownLister interface {
	Towns(ctx context.Context) ([]domain.TownRecord, error)
	TownBySlug(ctx context.Context, slug string) (domain.TownRecord, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	towns     TownLister
	baseURL   string
	clock     clock.Clock
	logger    *slog.Logger
	templates map[string]*template.Template
}

// NewServer constructs the Server and parses the embedded page templates.
// baseURL is the public origin used in sitemap and robots links.
func NewServer(towns TownLister, baseURL string, clk clock.Clock, logger *slog.Logger) (*Server, error) {
	templates, err := parseTemplates(web.Files)
	if err != nil {
		return nil, fmt.Errorf("handler: parse templates: %w", err)
	}
	return &Server{
		towns:     towns,
		baseURL:   strings.TrimRight(baseURL, "/"),
		clock:     clk,
		logger:    logger,
		templates: templates,
	}, nil
}

// Routes returns the router for the whole site. Middleware (request ID,
// logging, CORS) is applied by the caller in main.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.Health)
	r.Get("/api/towns", s.TownsAPI)
	r.Get("/", s.Home)
	r.Get("/circus-in/{slug}", s.TownPage)
	r.Get("/sitemap.xml", s.Sitemap)
	r.Get("/robots.txt", s.Robots)
	r.Handle("/static/*", http.FileServer(http.FS(web.Files)))
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		s.errorPage(w, http.StatusNotFound, "Page not found",
			"That page has left town. Try the tour dates below.")
	})
	return r
}

// parseTemplates builds one template set per page, each sharing the layout.
// Pages are parsed eagerly so a broken template fails at startup, not on the
// first request.
func parseTemplates(fsys fs.FS) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"statusLabel":    statusLabel,
		"statusClass":    statusClass,
		"formatDay":      func(t time.Time) string { return t.Format("Mon 2 Jan") },
		"formatShowtime": func(t time.Time) string { return t.Format("Mon 2 Jan, 3:04pm") },
	}

	templates := make(map[string]*template.Template)
	for _, page := range []string{"home", "town", "error"} {
		t, err := template.New(page).Funcs(funcs).
			ParseFS(fsys, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", page, err)
		}
		templates[page] = t
	}
	return templates, nil
}

// statusLabel is the human-readable badge text for a town status.
func statusLabel(s domain.Status) string {
	switch s {
	case domain.StatusFinalDay:
		return "Final day today"
	case domain.StatusInTownNow:
		return "In town now"
	case domain.StatusNextStop:
		return "Next stop"
	case domain.StatusComingSoon:
		return "Coming soon"
	default:
		return "Later this tour"
	}
}

// statusClass is the CSS class suffix for a town status.
func statusClass(s domain.Status) string {
	return strings.ToLower(strings.ReplaceAll(string(s), "_", "-"))
}
