package explorer_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/katalvlaran/haze/explorer"
)

func newTracer(t *testing.T) (*tracetest.SpanRecorder, explorer.Option) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, explorer.WithTracer(tp.Tracer("explorer-test"))
}

// TestRun_Spans emits one run span parenting one span per layer.
func TestRun_Spans(t *testing.T) {
	sr, opt := newTracer(t)
	sp := tinySpace(t)
	e := mustExplorer(t, sp, mustSection(t, sp, 0, 1, 2, 3), opt)

	st, err := e.Run(context.Background())
	require.NoError(t, err)

	var run sdktrace.ReadOnlySpan
	layers := 0
	for _, s := range sr.Ended() {
		switch s.Name() {
		case "explorer.run":
			run = s
		case "explorer.layer":
			layers++
		}
	}
	require.NotNil(t, run)
	assert.Equal(t, st.Layers, layers)
	assert.NotEqual(t, codes.Error, run.Status().Code)

	for _, s := range sr.Ended() {
		if s.Name() == "explorer.layer" {
			assert.Equal(t, run.SpanContext().SpanID(), s.Parent().SpanID())
		}
	}
}

// TestRun_SpanRecordsViolation marks the run span as failed.
func TestRun_SpanRecordsViolation(t *testing.T) {
	sr, opt := newTracer(t)
	sp := brokenSpace(t)
	e := mustExplorer(t, sp, mustSection(t, sp, 1, 2, 3, 4), opt)

	_, err := e.Run(context.Background())
	require.ErrorIs(t, err, explorer.ErrConsistency)

	for _, s := range sr.Ended() {
		if s.Name() == "explorer.run" {
			assert.Equal(t, codes.Error, s.Status().Code)
			require.NotEmpty(t, s.Events())
			assert.Equal(t, "exception", s.Events()[0].Name)
			return
		}
	}
	t.Fatal("no explorer.run span recorded")
}

// TestRun_Logs writes run start, halt and violation records.
func TestRun_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sp := brokenSpace(t)
	e := mustExplorer(t, sp, mustSection(t, sp, 1, 2, 3, 4), explorer.WithLogger(logger))

	_, err := e.Run(context.Background())
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "exploration started")
	assert.Contains(t, out, "consistency violation")
	assert.Contains(t, out, "mirror=1,4,5,6")
	assert.Contains(t, out, "reason=violation")
}
