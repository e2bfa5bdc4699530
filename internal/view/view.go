// Package view holds the HTML templates rendered by the handlers.
package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded page; each is addressed by its file name, e.g. "index.html"
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}
