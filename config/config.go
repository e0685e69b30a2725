package config

import (
	"slices"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"
)

const (
	DefaultFeedURL  = "https://alerthub.civildefence.govt.nz/rss/pwp"
	DefaultProxyURL = "https://api.allorigins.win/get"
)

type config struct {
	Port int    `envconfig:"PORT" default:"8080"`
	Env  string `envconfig:"APP_ENV" default:"production"`
	Log  struct {
		Level    string `envconfig:"LOG_LEVEL" default:"info"`
		Format   string `envconfig:"LOG_FORMAT" default:"text"`
		Requests bool   `envconfig:"LOG_REQUESTS" default:"false"`
	}
	Feed struct {
		URL      string `envconfig:"FEED_URL"`
		ProxyURL string `envconfig:"PROXY_URL"`
		Timezone string `envconfig:"TIMEZONE" default:"Pacific/Auckland"`
		RetryMax int    `envconfig:"HTTP_RETRY_MAX" default:"0"`
	}
	Cache struct {
		TTL         time.Duration `envconfig:"CACHE_TTL" default:"0"`
		StoragePath string        `envconfig:"CACHE_STORAGE_PATH" default:"."`
	}
}

var cfg config

func LoadConfig() error {
	err := envconfig.Process("", &cfg)
	if err != nil {
		return err
	}
	return nil
}

func Port() int {
	return cfg.Port
}

func IsLocal() bool {
	return strings.EqualFold(cfg.Env, "local")
}

func LogLevel() zerolog.Level {
	switch strings.ToLower(cfg.Log.Level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

func LogFormat() string {
	allowed := []string{"text", "json"}
	format := strings.ToLower(cfg.Log.Format)
	if slices.Contains(allowed, format) {
		return format
	}
	return "json"
}

func LogRequests() bool {
	return cfg.Log.Requests
}

func FeedURL() string {
	if cfg.Feed.URL == "" {
		return DefaultFeedURL
	}
	return cfg.Feed.URL
}

func ProxyURL() string {
	if cfg.Feed.ProxyURL == "" {
		return DefaultProxyURL
	}
	return cfg.Feed.ProxyURL
}

// Location falls back to UTC when TIMEZONE names an unknown zone.
func Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Feed.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func RetryMax() int {
	return max(cfg.Feed.RetryMax, 0)
}

// CacheTTL is how long a loaded collection is reused. Zero disables the cache.
func CacheTTL() time.Duration {
	return cfg.Cache.TTL
}

func CacheStorage() string {
	return cfg.Cache.StoragePath
}
