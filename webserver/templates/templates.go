// Package templates holds the pages of the identity verification flow.
package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Page is the data every page is rendered with.
type Page struct {
	Company string
	Logo    string
	Message string
}

// View is the root value passed to a page template.
type View struct {
	Title string
	Page  Page
}

func Load() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
