// Package render is the template renderer: a view name plus a data map in,
// an HTML page out. Views live embedded next to this file.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"datetime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 at 15:04")
		},
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named view with the data map.
func (r *Renderer) Render(view string, data map[string]any) (string, error) {
	var sb strings.Builder
	if err := r.tmpl.ExecuteTemplate(&sb, view+".html", data); err != nil {
		return "", fmt.Errorf("error rendering view %q: %w", view, err)
	}

	return sb.String(), nil
}
