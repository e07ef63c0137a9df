// Package views renders dashboard snapshots as HTML for browsers and as
// plain text for terminals.
package views

import (
	"embed"
	htmltemplate "html/template"
	"io"
	"path"
	"strconv"
	texttemplate "text/template"

	"github.com/EO-DataHub/eodhp-users-dashboard/internal/dashboard"
)

//go:embed templates
var templates embed.FS

var (
	htmlTemplate = htmltemplate.Must(htmltemplate.ParseFS(templates, "templates/dashboard.html"))
	textTemplate = texttemplate.Must(texttemplate.ParseFS(templates, "templates/dashboard.txt"))
)

// Page is the data rendered by both templates.
type Page struct {
	Title    string
	BasePath string
	State    dashboard.State
	Overlay  dashboard.Overlay
}

// NewPage builds a page from a directory snapshot and its overlay.
func NewPage(title, basePath string, state dashboard.State, overlay dashboard.Overlay) Page {
	return Page{
		Title:    title,
		BasePath: basePath,
		State:    state,
		Overlay:  overlay,
	}
}

func (p Page) Mode() dashboard.DirectoryMode {
	return p.State.Mode()
}

func (p Page) UsersLoadingText() string {
	return dashboard.UsersLoadingText
}

// refreshInterval is how often, in seconds, a page reloads while a fetch is
// outstanding.
const refreshInterval = 1

// Refresh reports whether the page must reload itself to pick up a pending
// users or posts fetch.
func (p Page) Refresh() bool {
	return p.State.LoadingUsers || p.Overlay.Mode == dashboard.OverlayLoading
}

func (p Page) RefreshSeconds() int {
	return refreshInterval
}

// Link joins path elements onto the base path.
func (p Page) Link(elems ...interface{}) string {
	parts := []string{"/", p.BasePath}
	for _, elem := range elems {
		switch v := elem.(type) {
		case int:
			parts = append(parts, strconv.Itoa(v))
		case string:
			parts = append(parts, v)
		}
	}
	return path.Join(parts...)
}

// RenderHTML writes the browser dashboard.
func RenderHTML(w io.Writer, page Page) error {
	return htmlTemplate.Execute(w, page)
}

// RenderText writes the terminal dashboard.
func RenderText(w io.Writer, page Page) error {
	return textTemplate.Execute(w, page)
}
