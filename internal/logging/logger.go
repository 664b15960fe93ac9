package logging

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type contextKey string

const (
	generationIDKey contextKey = "generation_id"
	loggerKey       contextKey = "logger"
)

// InitLogger initializes the global logger.
func InitLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// WithGeneration tags ctx with a generation ID, creating one if genID is
// empty. Every top-level strategy call (HeightBasedStrategy, IslandStrategy,
// each FairIslandsStrategy attempt) derives its logger from the returned
// context so every line for one run shares the same ID.
func WithGeneration(ctx context.Context, genID string) context.Context {
	if genID == "" {
		genID = uuid.New().String()
	}

	logger := log.With().Str("generation_id", genID).Logger()

	ctx = context.WithValue(ctx, generationIDKey, genID)
	ctx = context.WithValue(ctx, loggerKey, logger)
	return ctx
}

// FromContext returns the logger from the context, or the global logger if not found.
func FromContext(ctx context.Context) *zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return &logger
	}
	return &log.Logger
}

// GenerationID returns the generation ID from the context.
func GenerationID(ctx context.Context) string {
	if id, ok := ctx.Value(generationIDKey).(string); ok {
		return id
	}
	return ""
}

// LogError logs an error with context
func LogError(ctx context.Context, err error, message string, fields map[string]interface{}) {
	logger := FromContext(ctx)
	event := logger.Error().Err(err)
	
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	
	event.Msg(message)
}

// LogInfo logs an info message with context
func LogInfo(ctx context.Context, message string, fields map[string]interface{}) {
	logger := FromContext(ctx)
	event := logger.Info()
	
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	
	event.Msg(message)
}

// LogWarning logs a warning message with context
func LogWarning(ctx context.Context, message string, fields map[string]interface{}) {
	logger := FromContext(ctx)
	event := logger.Warn()
	
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	
	event.Msg(message)
}
