package tracer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"kuliner-chatbot-be/internal/config"
	"kuliner-chatbot-be/internal/pkg/logger"
)

func TestInitTracerDisabled(t *testing.T) {
	shutdown := InitTracer(config.TracingConfig{Enabled: false}, logger.NewNopLogger())

	assert.NoError(t, shutdown(context.Background()))
}
