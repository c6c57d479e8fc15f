// Package views holds the HTML pages served next to the JSON API.
package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page. Each file defines a template named after
// its base name, e.g. "index.html".
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(files, "templates/*.html")
}
