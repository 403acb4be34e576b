package core

import (
	"context"
	"encoding/json"
	"expvar"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

var expvarSeq uint64

// OperationStats aggregates the outcomes of one inventory operation.
type OperationStats struct {
	Calls    int64   `json:"calls"`
	Failures int64   `json:"failures"`
	TotalMS  float64 `json:"total_ms"`
}

// ExpvarMetricsSnapshot is the value published on the expvar page: one
// OperationStats per inventory operation, keyed by operation name.
type ExpvarMetricsSnapshot struct {
	Operations map[string]OperationStats `json:"operations"`
	TakenAt    time.Time                 `json:"taken_at"`
}

// ExpvarMetricsRecorder publishes inventory operation counters through the
// process expvar page, for deployments that run without a prometheus scrape.
// Failure counts sit next to call counts so a glance at /debug/vars shows
// which operations are erroring.
type ExpvarMetricsRecorder struct {
	name string
	mu   sync.Mutex
	ops  map[string]OperationStats
}

// NewExpvarMetricsRecorder publishes a recorder under name. An empty name
// gets a generated chemcore_inventory_metrics_N identifier, since expvar
// panics on duplicate publication.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		name = fmt.Sprintf("chemcore_inventory_metrics_%d", atomic.AddUint64(&expvarSeq, 1))
	}
	rec := &ExpvarMetricsRecorder{name: name, ops: make(map[string]OperationStats)}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar identifier the recorder publishes under.
func (r *ExpvarMetricsRecorder) Name() string { return r.name }

// Observe records one operation outcome. Empty operation names are dropped.
func (r *ExpvarMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	r.mu.Lock()
	stats := r.ops[operation]
	stats.Calls++
	if !success {
		stats.Failures++
	}
	stats.TotalMS += float64(duration) / float64(time.Millisecond)
	r.ops[operation] = stats
	r.mu.Unlock()
}

// Snapshot copies the aggregated stats for publication or assertions.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	ops := make(map[string]OperationStats, len(r.ops))
	for name, stats := range r.ops {
		ops[name] = stats
	}
	return ExpvarMetricsSnapshot{Operations: ops, TakenAt: time.Now().UTC()}
}

// JSONTraceEntry is one completed inventory operation span.
type JSONTraceEntry struct {
	Operation string    `json:"operation"`
	OK        bool      `json:"ok"`
	Err       string    `json:"err,omitempty"`
	ElapsedMS float64   `json:"elapsed_ms"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// JSONTraceTracer writes one JSON line per finished operation and keeps the
// entries in memory so diagnostics can read them back. A nil writer records
// without emitting.
type JSONTraceTracer struct {
	mu      sync.Mutex
	enc     *json.Encoder
	entries []JSONTraceEntry
}

// NewJSONTracer constructs a tracer emitting JSON lines to w.
func NewJSONTracer(w io.Writer) *JSONTraceTracer {
	t := &JSONTraceTracer{}
	if w != nil {
		t.enc = json.NewEncoder(w)
	}
	return t
}

// Entries returns a copy of every recorded span in completion order.
func (t *JSONTraceTracer) Entries() []JSONTraceEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]JSONTraceEntry(nil), t.entries...)
}

// Start implements Tracer.
func (t *JSONTraceTracer) Start(ctx context.Context, operation string) (context.Context, TraceSpan) {
	return ctx, &jsonTraceSpan{tracer: t, operation: operation, start: time.Now().UTC()}
}

type jsonTraceSpan struct {
	tracer    *JSONTraceTracer
	operation string
	start     time.Time
}

func (s *jsonTraceSpan) End(err error) {
	end := time.Now().UTC()
	entry := JSONTraceEntry{
		Operation: s.operation,
		OK:        err == nil,
		ElapsedMS: float64(end.Sub(s.start)) / float64(time.Millisecond),
		Start:     s.start,
		End:       end,
	}
	if err != nil {
		entry.Err = err.Error()
	}
	s.tracer.mu.Lock()
	s.tracer.entries = append(s.tracer.entries, entry)
	if s.tracer.enc != nil {
		_ = s.tracer.enc.Encode(entry)
	}
	s.tracer.mu.Unlock()
}
