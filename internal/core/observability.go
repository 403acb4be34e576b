package core

import (
	"context"
	"io"
	"log"
	"time"
)

// Logger receives service-level diagnostics. The default is a no-op.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// MetricsRecorder observes service operation outcomes.
type MetricsRecorder interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Tracer starts spans around service operations.
type Tracer interface {
	Start(ctx context.Context, operation string) (context.Context, TraceSpan)
}

// TraceSpan terminates a started span with its outcome.
type TraceSpan interface {
	End(err error)
}

type noopLogger struct{}

func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

type noopMetrics struct{}

func (noopMetrics) Observe(context.Context, string, bool, time.Duration) {}

type noopTracer struct{}

func (noopTracer) Start(ctx context.Context, _ string) (context.Context, TraceSpan) {
	return ctx, noopSpan{}
}

type noopSpan struct{}

func (noopSpan) End(error) {}

// stdLogger adapts the standard library logger to the Logger interface.
type stdLogger struct {
	inner *log.Logger
}

// NewStdLogger builds a Logger that writes prefixed lines to w.
func NewStdLogger(w io.Writer) Logger {
	return stdLogger{inner: log.New(w, "chemcore ", log.LstdFlags|log.LUTC)}
}

func (l stdLogger) Infof(format string, args ...any) {
	l.inner.Printf("INFO "+format, args...)
}

func (l stdLogger) Warnf(format string, args ...any) {
	l.inner.Printf("WARN "+format, args...)
}

func (l stdLogger) Errorf(format string, args ...any) {
	l.inner.Printf("ERROR "+format, args...)
}
