// Package web holds the embedded HTML templates and static assets served by
// the website.
package web

import "embed"

//go:embed templates/*.html static/*
var Files embed.FS
