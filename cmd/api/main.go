package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RobBrazier/alertfeed/internal/server"
	"github.com/rs/zerolog/log"
)

func gracefulShutdown(apiServer *http.Server, closer io.Closer, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop()

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown with error")
	}
	if err := closer.Close(); err != nil {
		log.Error().Err(err).Msg("Cleanup failed")
	}

	log.Info().Msg("Server exiting")

	done <- true
}

func main() {
	server, closer, err := server.NewServer()
	if err != nil {
		log.Error().Err(err).Msg("failed to configure server")
		os.Exit(1)
	}

	done := make(chan bool, 1)
	go gracefulShutdown(server, closer, done)

	log.Info().Str("addr", server.Addr).Msg("Listening")
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server error")
	}

	<-done
	log.Info().Msg("Graceful shutdown complete.")
}
