package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

const serviceName = "alertfeed"

type Options struct {
	// Console switches to the human readable writer.
	Console bool
	Level   zerolog.Level
	Output  io.Writer
}

// Setup builds the process logger, installs it as the zerolog global and
// points the slog default at it so libraries logging through slog share
// the same sink.
func Setup(opts Options) *zerolog.Logger {
	writer := opts.Output
	if writer == nil {
		writer = os.Stdout
	}
	if opts.Console {
		writer = zerolog.ConsoleWriter{Out: writer}
	}
	context := zerolog.New(writer).With().Timestamp().Caller().Stack()
	if !opts.Console {
		context = context.Str("service.name", serviceName)
	}
	logger := context.Logger().Level(opts.Level)
	log.Logger = logger

	slog.SetDefault(slog.New(slogzerolog.Option{
		Level:  slogLevel(opts.Level),
		Logger: &logger,
	}.NewZerologHandler()))
	return &logger
}

func slogLevel(level zerolog.Level) slog.Level {
	switch {
	case level <= zerolog.DebugLevel:
		return slog.LevelDebug
	case level == zerolog.InfoLevel:
		return slog.LevelInfo
	case level == zerolog.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
