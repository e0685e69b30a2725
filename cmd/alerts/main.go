// Package main runs a single alert load from the command line.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RobBrazier/alertfeed/cmd/web/utils"
	"github.com/RobBrazier/alertfeed/config"
	"github.com/RobBrazier/alertfeed/internal/alerts"
	"github.com/RobBrazier/alertfeed/internal/logging"
	"github.com/RobBrazier/alertfeed/internal/model"
	"github.com/RobBrazier/alertfeed/internal/proxy"
	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/joho/godotenv/autoload"
)

// CLI structure
var CLI struct {
	FeedURL  string        `help:"Feed to load" env:"FEED_URL" default:"${feed_url}"`
	ProxyURL string        `help:"CORS proxy endpoint" env:"PROXY_URL" default:"${proxy_url}"`
	Timezone string        `help:"Zone used to format publish dates" env:"TIMEZONE" default:"Pacific/Auckland"`
	Timeout  time.Duration `help:"Give up on the proxy after this long" default:"30s"`
	Debug    bool          `help:"Enable debug logging" default:"false"`

	Render struct{} `cmd:"" default:"1" help:"Print the final alerts container markup."`
	Items  struct{} `cmd:"" help:"Print one line per alert."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("alerts"),
		kong.Description("Load the NEMA alert feed once through the CORS proxy."),
		kong.Vars{
			"feed_url":  config.DefaultFeedURL,
			"proxy_url": config.DefaultProxyURL,
		},
	)

	level := zerolog.WarnLevel
	if CLI.Debug {
		level = zerolog.DebugLevel
	}
	logging.Setup(logging.Options{Console: true, Level: level, Output: os.Stderr})

	loc, err := time.LoadLocation(CLI.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", CLI.Timezone).Msg("Unknown timezone, using UTC")
		loc = time.UTC
	}
	loader := alerts.NewLoader(alerts.Options{
		Proxy:    proxy.NewClient(CLI.ProxyURL, 0, utils.Version),
		FeedURL:  CLI.FeedURL,
		Location: loc,
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	runCtx, cancel := context.WithTimeout(runCtx, CLI.Timeout)
	defer cancel()

	switch ctx.Command() {
	case "render":
		err = render(runCtx, loader, os.Stdout)
	case "items":
		err = items(runCtx, loader, os.Stdout)
	default:
		panic(ctx.Command())
	}
	if err != nil {
		os.Exit(1)
	}
}

// render prints whatever the container ends up holding, error message
// included; the exit status reports the failure.
func render(ctx context.Context, loader *alerts.Loader, w io.Writer) error {
	container := alerts.NewContainer(alerts.ContainerID)
	err := loader.Load(ctx, container)
	fmt.Fprintln(w, container.Content())
	return err
}

func items(ctx context.Context, loader *alerts.Loader, w io.Writer) error {
	collection, err := loader.Fetch(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if len(collection.Alerts) == 0 {
		fmt.Fprintln(w, "No new alerts found at this time.")
		return nil
	}
	for _, alert := range collection.Alerts {
		fmt.Fprintln(w, formatItem(alert))
	}
	return nil
}

func formatItem(alert model.Alert) string {
	return fmt.Sprintf("%s\t%s\t%s", alert.PublishedAt, alert.Title, alert.Link)
}
