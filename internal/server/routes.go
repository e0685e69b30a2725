package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/RobBrazier/alertfeed/cmd/web"
	"github.com/RobBrazier/alertfeed/internal/alerts"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const fragmentPath = "/alerts/fragment"

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(30 * time.Second))
	if s.logRequests {
		r.Use(httplog.RequestLogger(slog.Default(), &httplog.Options{
			Level:         slog.LevelInfo,
			Schema:        httplog.SchemaOTEL.Concise(true),
			RecoverPanics: true,
		}))
	} else {
		r.Use(middleware.Recoverer)
	}
	r.Use(middleware.Heartbeat("/up"))
	r.Use(Robots)
	r.Use(middleware.URLFormat)

	MountStatic(r)

	r.Get("/", templ.Handler(web.Page(s.pageProps())).ServeHTTP)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(10, 10*time.Second))

		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", s.FeedHandler)
			r.Get("/fragment", s.FragmentHandler)
		})
	})

	return r
}

func (s *Server) pageProps() web.PageProps {
	return web.PageProps{
		Title:       "NEMA Alerts",
		FeedURL:     s.loader.FeedURL(),
		FragmentURL: fragmentPath,
		ContainerID: alerts.ContainerID,
		Placeholder: alerts.NewRenderer().Loading(),
		Version:     s.version,
	}
}
