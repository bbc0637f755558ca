// Package views holds the HTML templates of the console.
package views

import (
	"embed"
	"html/template"
	"slices"
	"strings"

	"recruitadmin/internal/domain/models"
	"recruitadmin/internal/form"
	"recruitadmin/internal/notify"
	"recruitadmin/internal/screens"
	"recruitadmin/internal/utils"
)

//go:embed templates/*.html
var files embed.FS

// Page is the data every full page template receives.
type Page struct {
	Title     string
	User      *models.UserProfile
	Nav       []screens.Meta
	Toasts    []notify.Toast
	Busy      bool
	RequestID string
	Body      any
}

// LoginBody is the body of login.html.
type LoginBody struct {
	Controls  []form.Control
	FormError string
}

// ProfileBody is the body of profile.html.
type ProfileBody struct {
	Profile       []form.Control
	ProfileError  string
	Password      []form.Control
	PasswordError string
}

var funcs = template.FuncMap{
	"join":     strings.Join,
	"contains": slices.Contains[[]string, string],
	"initials": utils.Initials,
	"lower":    strings.ToLower,
	"dict":     dict,
}

// dict builds a map from alternating keys and values, for passing several values to a partial.
func dict(kv ...any) map[string]any {
	out := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			out[k] = kv[i+1]
		}
	}
	return out
}

// Templates parses every embedded template.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(files, "templates/*.html"))
}
