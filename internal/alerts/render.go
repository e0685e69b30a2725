package alerts

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/Masterminds/sprig/v3"
	"github.com/RobBrazier/alertfeed/internal/model"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*
var fs embed.FS

var descriptionPolicy = bluemonday.UGCPolicy()

type alertView struct {
	Title           string
	Link            string
	PublishedAt     string
	Description     template.HTML
	ShowDescription bool
}

// Renderer produces the markup written into the alerts container for each
// state of a load.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() *Renderer {
	return &Renderer{
		templates: template.Must(
			template.New("base").Funcs(sprig.FuncMap()).ParseFS(fs, "templates/*.tmpl"),
		),
	}
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var builder strings.Builder
	if err := r.templates.ExecuteTemplate(&builder, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return builder.String(), nil
}

func (r *Renderer) Loading() string {
	out, err := r.execute("loading.tmpl", nil)
	if err != nil {
		return r.Error(err)
	}
	return out
}

func (r *Renderer) Empty() string {
	out, err := r.execute("empty.tmpl", nil)
	if err != nil {
		return r.Error(err)
	}
	return out
}

// Alerts renders one block per alert in the given order. Titles are escaped;
// descriptions are treated as HTML and sanitized.
func (r *Renderer) Alerts(alerts []model.Alert) (string, error) {
	views := make([]alertView, 0, len(alerts))
	for _, alert := range alerts {
		description := descriptionPolicy.Sanitize(alert.Description)
		views = append(views, alertView{
			Title:           alert.Title,
			Link:            alert.Link,
			PublishedAt:     alert.PublishedAt,
			Description:     template.HTML(description),
			ShowDescription: strings.TrimSpace(description) != "" && showDescription(alert.Title, alert.Description),
		})
	}
	return r.execute("alerts.tmpl", views)
}

// Error renders the single user-facing failure message embedding err's text.
func (r *Renderer) Error(err error) string {
	out, renderErr := r.execute("error.tmpl", err.Error())
	if renderErr != nil {
		return fmt.Sprintf(`<p class="error-message">Failed to load alerts. (Error: %s)</p>`, html.EscapeString(err.Error()))
	}
	return out
}
