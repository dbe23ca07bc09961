package views

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.gohtml
var files embed.FS

// View renders the server-side HTML pages. All templates are parsed once at
// startup from the embedded filesystem.
type View struct {
	templates *template.Template
}

// New parses the embedded page templates and returns a View.
func New() (*View, error) {
	t, err := template.ParseFS(files, "templates/*.gohtml")
	if err != nil {
		return nil, err
	}
	return &View{templates: t}, nil
}

// Render executes the named page template into the response with status 200.
func (v *View) Render(w http.ResponseWriter, name string, data interface{}) error {
	return v.RenderStatus(w, http.StatusOK, name, data)
}

// RenderStatus executes the named page template into the response with the
// given status code. The page is buffered first so a failing template yields
// a clean 500 instead of a half-written body.
func (v *View) RenderStatus(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := v.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
	return nil
}
