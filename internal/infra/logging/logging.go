package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"gifticon-keeper/internal/config"
)

type ctxKey string

const (
	ctxTraceID    ctxKey = "trace_id"
	ctxUserID     ctxKey = "user_id"
	ctxGifticonID ctxKey = "gifticon_id"
)

// New builds the root logger from config. Dev mode forces the console
// writer and disables sampling so nothing is lost while debugging.
func New(cfg config.LogConfig, dev bool) *zerolog.Logger {
	if level, err := zerolog.ParseLevel(cfg.Level); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	var out io.Writer = os.Stdout
	if dev || strings.EqualFold(cfg.Format, "console") {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	root := zerolog.New(out).With().Timestamp().Logger()

	if cfg.Sampling && !dev {
		root = root.Sample(&zerolog.BasicSampler{N: 100})
	}
	return &root
}

// With copies the request-scoped ids out of ctx into a child logger.
func With(ctx context.Context, base *zerolog.Logger) *zerolog.Logger {
	c := base.With()
	for _, key := range []ctxKey{ctxTraceID, ctxUserID, ctxGifticonID} {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			c = c.Str(string(key), v)
		}
	}
	child := c.Logger()
	return &child
}

// TraceDuration logs entry and exit of a named operation at TRACE level.
// Usage: defer logging.TraceDuration(logger, "RecommendationUC.Generate")()
func TraceDuration(logger *zerolog.Logger, name string) func() {
	start := time.Now()
	logger.Trace().Str("method", name).Msg("start")
	return func() {
		logger.Trace().Str("method", name).Dur("duration", time.Since(start)).Msg("finish")
	}
}

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxTraceID, id)
}

func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxUserID, id)
}

func WithGifticonID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxGifticonID, id)
}
