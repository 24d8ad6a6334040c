package sentry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subbridge/subbridge/internal/config"
	ierr "github.com/subbridge/subbridge/internal/errors"
	"github.com/subbridge/subbridge/internal/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedService(t *testing.T) (*Service, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	l := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	return NewSentryService(config.GetDefaultConfig(), l), logs
}

func TestNotifyLogsWhenSentryDisabled(t *testing.T) {
	svc, logs := newObservedService(t)

	err := ierr.NewError("no stripe customer").Mark(ierr.ErrCustomerResolution)
	svc.Notify(context.Background(), err, map[string]any{"message": "lookup failed"})

	entries := logs.FilterMessage("reporting error").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, ierr.ErrCodeCustomerResolution, fields["error_code"])
	assert.Equal(t, "lookup failed", fields["message"])
}

func TestNotifyIgnoresNilError(t *testing.T) {
	svc, logs := newObservedService(t)
	svc.Notify(context.Background(), nil, nil)
	assert.Equal(t, 0, logs.Len())
}

func TestFlushDisabled(t *testing.T) {
	svc, _ := newObservedService(t)
	assert.True(t, svc.Flush(1))
}
