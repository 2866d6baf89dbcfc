package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"rapv/site/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer describes the page renderer contract used by the HTTP layer.
type Renderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
}

const (
	PagePublic = "public.html"
	PageLogin  = "login.html"
	PageAdmin  = "admin.html"
)

type TemplateRenderer struct {
	tmpl *template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	tmpl, err := template.New("site").Funcs(template.FuncMap{
		"label": func(key string, lang models.Language) string { return Label(key, lang) },
		"dict":  dict,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// Render executes the named page into a buffer and copies it to out[0] when
// given, so a failed render never writes a partial page.
func (r *TemplateRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	if len(out) > 0 && out[0] != nil {
		if _, err := io.Copy(out[0], bytes.NewReader(buf.Bytes())); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// dict builds a map from alternating key/value arguments for sub-templates.
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	out := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		out[key] = pairs[i+1]
	}
	return out, nil
}
