package alerts

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/RobBrazier/alertfeed/internal/cache"
	"github.com/RobBrazier/alertfeed/internal/model"
	"github.com/rs/zerolog/log"
)

const defaultFeedTitle = "NEMA Alerts"

// Proxy performs the single GET for a feed URL through the CORS proxy.
type Proxy interface {
	Get(ctx context.Context, feedURL string) (*http.Response, error)
}

// Observer receives the outcome of every load.
type Observer interface {
	RecordLoad(outcome string, items int, elapsed time.Duration)
}

type Options struct {
	Proxy    Proxy
	FeedURL  string
	Location *time.Location
	Renderer *Renderer
	// Cache may be nil, in which case every load goes to the proxy.
	Cache    *cache.CollectionCache
	CacheTTL time.Duration
	Observer Observer
}

// Loader fetches, decodes and renders the alert feed.
type Loader struct {
	proxy    Proxy
	feedURL  string
	location *time.Location
	renderer *Renderer
	cache    *cache.CollectionCache
	cacheTTL time.Duration
	observer Observer
}

func NewLoader(opts Options) *Loader {
	loader := &Loader{
		proxy:    opts.Proxy,
		feedURL:  opts.FeedURL,
		location: opts.Location,
		renderer: opts.Renderer,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		observer: opts.Observer,
	}
	if loader.location == nil {
		loader.location = time.UTC
	}
	if loader.renderer == nil {
		loader.renderer = NewRenderer()
	}
	return loader
}

func (l *Loader) FeedURL() string {
	return l.feedURL
}

// Load writes the loading placeholder to target, then replaces it with the
// rendered alerts, the no-alerts message or a single error message. The
// returned error is the one already shown in target.
func (l *Loader) Load(ctx context.Context, target Target) error {
	target.Replace(l.renderer.Loading())

	collection, err := l.Fetch(ctx)
	if err != nil {
		log.Error().Err(err).Str("kind", Kind(err)).Str("feed", l.feedURL).Msg("Error fetching or parsing alert feed")
		target.Replace(l.renderer.Error(err))
		return err
	}
	if len(collection.Alerts) == 0 {
		target.Replace(l.renderer.Empty())
		return nil
	}
	out, err := l.renderer.Alerts(collection.Alerts)
	if err != nil {
		log.Error().Err(err).Msg("Error rendering alerts")
		target.Replace(l.renderer.Error(err))
		return err
	}
	target.Replace(out)
	return nil
}

// Fetch runs the pipeline without rendering: one GET through the proxy,
// envelope decoding, XML parsing and item extraction. Successful results are
// served from the cache when one is configured; failures are never cached.
func (l *Loader) Fetch(ctx context.Context) (model.Collection, error) {
	start := time.Now()
	collection, err := l.cachedFetch(ctx)
	outcome := "success"
	if err != nil {
		outcome = Kind(err)
	}
	if l.observer != nil {
		l.observer.RecordLoad(outcome, len(collection.Alerts), time.Since(start))
	}
	return collection, err
}

func (l *Loader) cachedFetch(ctx context.Context) (model.Collection, error) {
	if l.cache == nil {
		return l.fetch(ctx)
	}
	loader := cache.CollectionLoaderFunc(func(ctx context.Context, key string) (model.Collection, error) {
		return l.fetch(ctx)
	})
	collection, err := l.cache.Get(ctx, l.feedURL, loader)
	if err != nil {
		return model.Collection{}, err
	}
	// Entries restored from disk keep their original creation time.
	if l.cacheTTL > 0 && time.Since(collection.Created) > l.cacheTTL {
		log.Debug().Time("created", collection.Created).Msg("Discarding stale cached alerts")
		l.cache.Invalidate(l.feedURL)
		return l.cache.Get(ctx, l.feedURL, loader)
	}
	return collection, nil
}

func (l *Loader) fetch(ctx context.Context) (model.Collection, error) {
	now := time.Now()
	logger := log.With().Str("feed", l.feedURL).Logger()
	logger.Info().Msg("Fetching alerts")

	resp, err := l.proxy.Get(ctx, l.feedURL)
	if err != nil {
		return model.Collection{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return model.Collection{}, &TransportError{StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Collection{}, &TransportError{Err: err}
	}

	doc, status, err := decodeEnvelope(body)
	if status != nil {
		logger.Debug().
			Int("upstream_status", status.HTTPCode).
			Str("content_type", status.ContentType).
			Int("response_time", status.ResponseTime).
			Msg("Proxy status")
	}
	if err != nil {
		return model.Collection{}, err
	}

	root, err := parseDocument(doc)
	if err != nil {
		logger.Error().Err(err).Msg("XML parsing error from proxy contents")
		return model.Collection{}, &ParseError{Msg: msgBadXML, Err: err}
	}

	alerts := extractAlerts(root, l.location)
	title, link := channelInfo(root)
	logger.Info().Int("entries", len(alerts)).Dur("elapsed", time.Since(now)).Msg("Retrieved alerts")
	return model.NewCollection(title, link, alerts), nil
}

func channelInfo(doc *element) (title, link string) {
	title = defaultFeedTitle
	channel := doc.first("channel")
	if channel == nil {
		return title, ""
	}
	if el := channel.child("title"); el != nil && el.textContent() != "" {
		title = el.textContent()
	}
	if el := channel.child("link"); el != nil {
		link = el.textContent()
	}
	return title, link
}
