package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedZap(t *testing.T) (*ZapLogger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLogger(zap.New(core)), logs
}

func TestZapLogger_Levels(t *testing.T) {
	log, logs := newObservedZap(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	entries := logs.All()
	require.Len(t, entries, 4)

	want := []zapcore.Level{zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel}
	for i, e := range entries {
		assert.Equal(t, want[i], e.Level)
	}
	assert.Equal(t, "inf", entries[1].Message)
	assert.EqualValues(t, 2, entries[1].ContextMap()["b"])
}

type syncCountingSink struct {
	bytes.Buffer
	syncs int
}

func (s *syncCountingSink) Sync() error {
	s.syncs++
	return nil
}

func TestSync_FlushesZap(t *testing.T) {
	sink := &syncCountingSink{}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, zapcore.InfoLevel)
	var log Logger = NewZapLogger(zap.New(core)).With("module", "test")

	log.Info(context.Background(), "bye")
	require.NoError(t, Sync(log))

	assert.Equal(t, 1, sink.syncs)
	assert.Contains(t, sink.String(), `"msg":"bye"`)
}

func TestSync_IgnoresUnbufferedLoggers(t *testing.T) {
	assert.NoError(t, Sync(Nop()))
	assert.NoError(t, Sync(NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))))
}

func TestZapLogger_With_AddsFields(t *testing.T) {
	log, logs := newObservedZap(t)

	log.With("req_id", "123").Info(context.Background(), "hello", "k", "v")

	entries := logs.FilterMessage("hello").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "123", fields["req_id"])
	assert.Equal(t, "v", fields["k"])
}

func TestNew(t *testing.T) {
	l, err := New("")
	require.NoError(t, err)
	assert.IsType(t, &SlogLogger{}, l)

	l, err = New(BackendZap)
	require.NoError(t, err)
	assert.IsType(t, &ZapLogger{}, l)

	_, err = New("logrus")
	require.Error(t, err)
}
