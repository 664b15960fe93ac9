package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithGeneration_GeneratesID(t *testing.T) {
	InitLogger()

	ctx := WithGeneration(context.Background(), "")
	assert.NotEmpty(t, GenerationID(ctx))

	logger := FromContext(ctx)
	assert.NotNil(t, logger)
}

func TestWithGeneration_PreservesProvidedID(t *testing.T) {
	InitLogger()

	ctx := WithGeneration(context.Background(), "fixture-a")
	assert.Equal(t, "fixture-a", GenerationID(ctx))
}

func TestFromContext_FallsBackToGlobalLogger(t *testing.T) {
	InitLogger()

	logger := FromContext(context.Background())
	assert.NotNil(t, logger)
}

func TestLogHelpers_DoNotPanic(t *testing.T) {
	InitLogger()
	ctx := WithGeneration(context.Background(), "fixture-b")

	assert.NotPanics(t, func() {
		LogInfo(ctx, "stage started", map[string]interface{}{"stage": "ReliefPlacer"})
		LogWarning(ctx, "fallback triggered", map[string]interface{}{"attempt": 2})
		LogError(ctx, assert.AnError, "invariant breach", map[string]interface{}{"stage": "ContinentLabeler"})
	})
}
