package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	sc := bufio.NewScanner(buf)
	for sc.Scan() {
		var rec map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		out = append(out, rec)
	}
	return out
}

func TestJSONSlogLogger_LevelsAndAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONSlogLogger(&buf, slog.LevelDebug)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", "two")
	log.Warn(ctx, "wrn")
	log.Error(ctx, "err", "d", true)

	recs := records(t, &buf)
	require.Len(t, recs, 4)

	assert.Equal(t, "DEBUG", recs[0]["level"])
	assert.Equal(t, float64(1), recs[0]["a"])
	assert.Equal(t, "inf", recs[1]["msg"])
	assert.Equal(t, "two", recs[1]["b"])
	assert.Equal(t, "WARN", recs[2]["level"])
	assert.Equal(t, true, recs[3]["d"])
}

func TestJSONSlogLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONSlogLogger(&buf, slog.LevelInfo)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "shown")

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "shown", recs[0]["msg"])
}

func TestSlogLogger_WithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONSlogLogger(&buf, slog.LevelInfo)

	log.With("request_id", "abc", "user", "alice").Info(context.Background(), "hello", "k", "v")

	recs := records(t, &buf)
	require.Len(t, recs, 1)
	assert.Equal(t, "abc", recs[0]["request_id"])
	assert.Equal(t, "alice", recs[0]["user"])
	assert.Equal(t, "v", recs[0]["k"])
}

func TestNop(t *testing.T) {
	l := Nop().With("k", "v")
	assert.NotPanics(t, func() {
		l.Info(context.Background(), "x")
		l.Warn(context.Background(), "x")
		l.Error(context.Background(), "x")
	})
}
