// Package resources holds the packaged templates and scripts of the lesson
// embed block and the loaders the block reads them through.
package resources

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
)

//go:embed templates/*.html static/js/*.js static/js/translations/*/text.js
var packaged embed.FS

// FS returns the packaged resource filesystem
func FS() fs.FS {
	return packaged
}

// Loader reads packaged resources by relative path
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a resource loader over the given filesystem
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Load returns the raw bytes of a resource.
// A missing resource yields an error wrapping fs.ErrNotExist.
func (l *Loader) Load(name string) ([]byte, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource %s: %w", name, err)
	}
	return data, nil
}

// Locales lists the locales that have a packaged translation script
func (l *Loader) Locales() ([]string, error) {
	paths, err := fs.Glob(l.fsys, "static/js/translations/*/text.js")
	if err != nil {
		return nil, fmt.Errorf("failed to list translations: %w", err)
	}

	locales := make([]string, 0, len(paths))
	for _, p := range paths {
		locales = append(locales, path.Base(path.Dir(p)))
	}
	sort.Strings(locales)

	return locales, nil
}

// Renderer executes the packaged HTML templates
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every template under templates/ in the given filesystem
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	tmpl, err := template.ParseFS(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render fills the named template with the given context
func (r *Renderer) Render(name string, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
