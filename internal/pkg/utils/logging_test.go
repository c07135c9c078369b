package utils

import (
	"context"
	"errors"
	"testing"

	"neohearts-service/internal/pkg/constvars"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func requestContext() context.Context {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	return context.WithValue(ctx, constvars.CONTEXT_JWT_SUBJECT_KEY, "nurse-7")
}

func TestLogOperation(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		err := LogOperation(requestContext(), zap.New(core), "newborn_bundle_build", func() error { return nil },
			zap.String(constvars.LoggingPatientIDKey, "p-1"))
		require.NoError(t, err)

		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "req-1", fields[constvars.LoggingRequestIDKey])
		assert.Equal(t, "nurse-7", fields[constvars.LoggingSubjectKey])
		assert.Equal(t, "p-1", fields[constvars.LoggingPatientIDKey])
		assert.Equal(t, true, fields[constvars.LoggingSuccessKey])
	})

	t.Run("Failure is returned and logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		boom := errors.New("boom")
		err := LogOperation(context.Background(), zap.New(core), "newborn_bundle_build", func() error { return boom })
		assert.ErrorIs(t, err, boom)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
		assert.NotContains(t, entry.ContextMap(), constvars.LoggingSubjectKey)
	})
}

func TestLogRecordEvent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	LogRecordEvent(requestContext(), zap.New(core), "newborn_updated", zap.String(constvars.LoggingPatientIDKey, "p-1"))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "newborn_updated", fields["record_event"])
	assert.Equal(t, "nurse-7", fields[constvars.LoggingSubjectKey])
	assert.Equal(t, "p-1", fields[constvars.LoggingPatientIDKey])
}
