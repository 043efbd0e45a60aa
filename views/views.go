package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"

	"member-profile/models"
)

const (
	Index = "index.html"
	Login = "login.html"
	Edit  = "edit.html"
	Error = "error.html"
)

//go:embed templates/*.html
var embedded embed.FS

// PageData is what every view receives. Unused fields stay zero.
type PageData struct {
	User    *models.Member
	Message string
	Error   string
}

// Renderer turns a view name and its data into a response.
type Renderer interface {
	Render(w http.ResponseWriter, status int, view string, data PageData) error
}

// TemplateRenderer renders html/template views.
type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses the built-in templates, or every *.html file in
// dir when dir is set.
func NewTemplateRenderer(dir string) (*TemplateRenderer, error) {
	var (
		t   *template.Template
		err error
	)
	if dir == "" {
		t, err = template.ParseFS(embedded, "templates/*.html")
	} else {
		t, err = template.ParseGlob(filepath.Join(dir, "*.html"))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &TemplateRenderer{templates: t}, nil
}

// Render executes view into a buffer and writes nothing if that fails, so the
// caller can still send an error page.
func (tr *TemplateRenderer) Render(w http.ResponseWriter, status int, view string, data PageData) error {
	var buf bytes.Buffer
	if err := tr.templates.ExecuteTemplate(&buf, view, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", view, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write %s: %w", view, err)
	}
	return nil
}
