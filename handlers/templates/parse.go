package templates

import (
	"embed"
	"html/template"

	"github.com/icco/movierecs/lib/render"
)

//go:embed *.html
var FS embed.FS

// ParseTemplates parses HTML templates from the embedded filesystem.
func ParseTemplates(files ...string) (*template.Template, error) {
	funcMap := template.FuncMap{
		"maxStars": func() int {
			return render.MaxStars
		},
	}

	return template.New("").Funcs(funcMap).ParseFS(FS, files...)
}
