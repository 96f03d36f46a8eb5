package views

import (
	"embed"
	"fmt"
	"html/template"
)

// Template names rendered by the handlers.
const (
	Index        = "index.gohtml"
	AddMaterials = "addmaterials.gohtml"
	ItemListing  = "itemlisting.gohtml"
	Cats         = "cats.gohtml"
)

//go:embed templates/*.gohtml
var FS embed.FS

// Load parses every embedded template into a single set for gin's HTML renderer.
func Load() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(FS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Must is a helper that panics when the templates cannot be parsed.
func Must(tmpl *template.Template, err error) *template.Template {
	if err != nil {
		panic(err)
	}
	return tmpl
}
