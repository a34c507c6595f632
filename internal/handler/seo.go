package handler

import (
	"net/http"

	"github.com/silversons/circus-site/internal/domain"
	"github.com/silversons/circus-site/internal/seo"
)

// Sitemap handles GET /sitemap.xml. When the town listing cannot be resolved
// the sitemap degrades to the home page alone rather than erroring: a crawler
// hitting a transient upstream outage should not drop the whole site.
func (s *Server) Sitemap(w http.ResponseWriter, r *http.Request) {
	towns, err := s.towns.Towns(r.Context())
	if err != nil {
		s.logger.Warn("sitemap without towns", "error", err)
		towns = []domain.TownRecord{}
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if err := seo.WriteSitemap(w, s.baseURL, towns, s.clock.Now()); err != nil {
		s.logger.Error("write sitemap", "error", err)
	}
}

// Robots handles GET /robots.txt.
func (s *Server) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := seo.WriteRobots(w, s.baseURL); err != nil {
		s.logger.Error("write robots", "error", err)
	}
}
