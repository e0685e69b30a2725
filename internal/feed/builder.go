package feed

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/RobBrazier/alertfeed/internal/model"
	"github.com/gorilla/feeds"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var fs embed.FS

var contentPolicy = bluemonday.UGCPolicy()

// Collector runs one load of the alert feed.
type Collector interface {
	Fetch(ctx context.Context) (model.Collection, error)
}

type Builder interface {
	GetAlerts(ctx context.Context) (feeds.Feed, error)
}

type builder struct {
	collector Collector
	feedURL   string
	templates *template.Template
}

func NewBuilder(collector Collector, feedURL string) Builder {
	return &builder{
		collector: collector,
		feedURL:   feedURL,
		templates: template.Must(
			template.New("base").Funcs(sprig.FuncMap()).ParseFS(fs, "templates/*.tmpl"),
		),
	}
}

func (b *builder) GetAlerts(ctx context.Context) (feeds.Feed, error) {
	collection, err := b.collector.Fetch(ctx)
	if err != nil {
		return feeds.Feed{}, err
	}
	return b.buildFeed(collection), nil
}

// buildFeed keeps the items in document order; the source feed's order is
// the publisher's.
func (b *builder) buildFeed(collection model.Collection) feeds.Feed {
	created := collection.Created
	if created.IsZero() {
		created = time.Now()
	}
	link := collection.Link
	if link == "" {
		link = b.feedURL
	}
	feed := &feeds.Feed{
		Title:       collection.Title,
		Link:        &feeds.Link{Href: link},
		Description: fmt.Sprintf("Generated on %s from %s", created.Format("02 Jan 2006 15:04:05 (-0700)"), b.feedURL),
		Created:     created,
		Updated:     created,
	}
	for _, alert := range collection.Alerts {
		item := &feeds.Item{
			Title:       alert.Title,
			Link:        &feeds.Link{Href: alert.Link},
			Description: contentPolicy.Sanitize(alert.Description),
			Content:     b.renderContent(alert),
			Created:     alert.Published,
		}
		if alert.Link != model.DefaultLink && alert.Link != "" {
			item.Id = alert.Link
		}
		feed.Add(item)
	}
	return *feed
}

func (b *builder) renderContent(alert model.Alert) string {
	alert.Description = contentPolicy.Sanitize(alert.Description)
	var builder strings.Builder
	if err := b.templates.ExecuteTemplate(&builder, "content.tmpl", alert); err != nil {
		log.Error().Err(err).Str("title", alert.Title).Msg("Error rendering feed item content")
		return alert.Description
	}
	return strings.TrimSpace(builder.String())
}
