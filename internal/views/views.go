// Package views renders the demo's pages. Pages are html/template files
// embedded in the binary and exposed as templ components so handlers can
// serve them with templ.Handler.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/a-h/templ"
	"github.com/jonathan/empowr-credit/internal/types"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = mustParsePages()

func mustParsePages() map[string]*template.Template {
	base := template.Must(template.New("layout").Funcs(funcs).ParseFS(templateFS, "templates/layout/*.html"))

	files, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		panic(err)
	}
	out := make(map[string]*template.Template, len(files))
	for _, file := range files {
		t := template.Must(template.Must(base.Clone()).ParseFS(templateFS, file))
		out[strings.TrimSuffix(path.Base(file), ".html")] = t
	}
	return out
}

func render(page string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		t, ok := pages[page]
		if !ok {
			return fmt.Errorf("unknown page %q", page)
		}
		return t.ExecuteTemplate(w, "layout", data)
	})
}

// Static serves the stylesheet under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

// Route paths the navigation links to.
const (
	RouteHome       = "/"
	RouteAssessment = "/assessment"
	RouteDashboard  = "/dashboard"
	RouteLogin      = "/login"
	RouteRegister   = "/register"
)

// NavLink is one entry of the navigation bar.
type NavLink struct {
	Href   string
	Label  string
	Active bool
}

// Nav is the navigation bar state: the current route and who is signed in.
type Nav struct {
	Active  string
	Session types.Session
}

// Links returns the primary navigation, marking the active route.
func (n Nav) Links() []NavLink {
	links := []NavLink{
		{Href: RouteHome, Label: "Home"},
		{Href: RouteAssessment, Label: "Assessment"},
		{Href: RouteDashboard, Label: "Dashboard"},
	}
	for i := range links {
		links[i].Active = links[i].Href == n.Active
	}
	return links
}

// Flash variants.
const (
	FlashSuccess     = "success"
	FlashDestructive = "destructive"
)

// Flash is a one-shot notice shown at the top of the next page.
type Flash struct {
	Variant     string
	Title       string
	Description string
}

// Chrome is the part of every page the layout renders.
type Chrome struct {
	Title string
	Nav   Nav
	Flash *Flash
}
