// Package view embeds and parses the server-rendered HTML templates.
package view

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var files embed.FS

var funcMap = template.FuncMap{
	"clock": func(t time.Time) string { return t.Format("15:04") },
	"day":   func(t time.Time) string { return t.Format("2") },
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
}

// Templates parses the embedded template set.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(files, "templates/*.html")
}
