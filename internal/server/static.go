package server

import (
	"io/fs"
	"net/http"

	"github.com/RobBrazier/alertfeed/assets"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

func MountStatic(r chi.Router) {
	staticRoot, err := fs.Sub(assets.Static, "build")
	if err != nil {
		log.Fatal().Err(err).Msg("Static assets missing")
	}

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticRoot)))
}

// Robots answers /robots.txt ahead of routing, the way middleware.Heartbeat
// answers its endpoint, so URLFormat never sees the extension.
func Robots(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Cache-Control", "public, max-age=86400")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(assets.RobotsTxt))
			return
		}
		next.ServeHTTP(w, r)
	})
}
