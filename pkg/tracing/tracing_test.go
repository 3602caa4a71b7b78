package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mozzabt/portfolio/internal/config"
	"github.com/mozzabt/portfolio/pkg/logger"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(config.Config{}, logger.NewNopLogger(), "portfolio-test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
