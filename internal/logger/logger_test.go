package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_RedactsSecrets(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewFromZap(zap.New(core))

	log.Info("login", "email", "a@x.com", "password", "hunter2", "access_token", "abc")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "a@x.com", fields["email"])
	assert.Equal(t, "[REDACTED]", fields["password"])
	assert.Equal(t, "[REDACTED]", fields["access_token"])
}

func TestLogger_With(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := NewFromZap(zap.New(core)).With("service", "ForumService")

	log.Warn("something odd", "post_id", 7)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "ForumService", entries[0].ContextMap()["service"])
	assert.EqualValues(t, 7, entries[0].ContextMap()["post_id"])
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"debug", "release"} {
		log, err := New(mode)
		require.NoError(t, err)
		require.NotNil(t, log.SugaredLogger)
	}
}
