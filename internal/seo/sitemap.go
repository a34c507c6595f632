// Package seo generates the site's search-engine artifacts: the XML sitemap,
// robots.txt, and schema.org Event JSON-LD for town pages. Generators write
// to an io.Writer and carry no HTTP concerns of their own.
package seo

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/silversons/circus-site/internal/domain"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type urlset struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// WriteSitemap writes the sitemap for the home page plus every currently
// listed town page. now supplies the lastmod date so output is deterministic
// under test.
func WriteSitemap(w io.Writer, baseURL string, towns []domain.TownRecord, now time.Time) error {
	base := strings.TrimRight(baseURL, "/")
	lastMod := now.Format("2006-01-02")

	set := urlset{XMLNS: sitemapNamespace}
	set.URLs = append(set.URLs, sitemapURL{Loc: base + "/", LastMod: lastMod})
	for _, t := range towns {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     base + "/circus-in/" + t.TownSlug,
			LastMod: lastMod,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// WriteRobots writes robots.txt, pointing crawlers at the sitemap.
func WriteRobots(w io.Writer, baseURL string) error {
	base := strings.TrimRight(baseURL, "/")
	_, err := fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", base)
	return err
}
