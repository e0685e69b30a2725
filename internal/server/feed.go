package server

import (
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/RobBrazier/alertfeed/internal/alerts"
	"github.com/RobBrazier/alertfeed/internal/feed"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/feeds"
	"github.com/rs/zerolog/log"
)

func writeContentType(mediaType string, w http.ResponseWriter) {
	params := map[string]string{
		"charset": "utf-8",
	}
	contentType := mime.FormatMediaType(mediaType, params)
	w.Header().Set("Content-Type", contentType)
}

func urlFormat(r *http.Request) string {
	format, _ := r.Context().Value(middleware.URLFormatCtxKey).(string)
	return format
}

func (s *Server) writeError(status int, err error, w http.ResponseWriter) {
	writeContentType("text/plain", w)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
}

// maxAge is what remains of the cache lifetime of something created at
// created.
func (s *Server) maxAge(created time.Time) int {
	remaining := created.Add(s.cacheTTL).Sub(time.Now())
	return max(int(remaining.Seconds()), 0)
}

func (s *Server) writeFeed(format feed.Format, out *feeds.Feed, w http.ResponseWriter) error {
	w.Header().Set("Last-Modified", out.Created.UTC().Format(http.TimeFormat))
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", s.maxAge(out.Created)))
	writeContentType(format.ContentType(), w)

	switch format {
	case feed.FORMAT_RSS:
		return out.WriteRss(w)
	case feed.FORMAT_ATOM:
		return out.WriteAtom(w)
	case feed.FORMAT_JSON:
		return out.WriteJSON(w)
	default:
		return fmt.Errorf("Invalid format: %s", format)
	}
}

// FragmentHandler runs one load and returns the final container markup.
// Failures are part of the rendered state, so the status is always 200.
func (s *Server) FragmentHandler(w http.ResponseWriter, r *http.Request) {
	container := alerts.NewContainer(alerts.ContainerID)
	if err := s.loader.Load(r.Context(), container); err != nil {
		log.Warn().Err(err).Str("kind", alerts.Kind(err)).Msg("Served error fragment")
	}
	writeContentType("text/html", w)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(container.Content()))
}

func (s *Server) FeedHandler(w http.ResponseWriter, r *http.Request) {
	format, ok := feed.ParseFormat(urlFormat(r))
	if !ok {
		s.writeError(http.StatusNotFound, fmt.Errorf("unknown feed format %q", urlFormat(r)), w)
		return
	}
	out, err := s.builder.GetAlerts(r.Context())
	if err != nil {
		log.Error().Err(err).Str("kind", alerts.Kind(err)).Msg("error retrieving alerts")
		s.writeError(http.StatusBadGateway, err, w)
		return
	}
	log.Info().Int("entries", len(out.Items)).Str("format", string(format)).Msg("Generated feed for alerts")
	if err := s.writeFeed(format, &out, w); err != nil {
		log.Error().Err(err).Msg("error writing feed")
	}
}
