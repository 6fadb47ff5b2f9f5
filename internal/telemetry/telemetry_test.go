package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledWithoutSettings(t *testing.T) {
	require.NoError(t, InitSentry("", "test"))
	assert.False(t, sentryEnabled)
	Report(errors.New("ignored"))
	Flush(time.Millisecond)

	shutdown, err := InitTracing(context.Background(), "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitSentryRejectsBadDSN(t *testing.T) {
	assert.Error(t, InitSentry("not a dsn", "test"))
	assert.False(t, sentryEnabled)
}
