package telegram

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"sync"
	"time"
)

// ──────────────────────────────────────────────
// Tracing — span trees for poll cycles
// ──────────────────────────────────────────────

// SpanKind classifies what a span measured.
type SpanKind string

const (
	// SpanKindCycle covers one full acquire/dispatch/advance cycle.
	SpanKindCycle SpanKind = "cycle"
	// SpanKindAcquire covers one getUpdates call.
	SpanKindAcquire SpanKind = "acquire"
	// SpanKindDispatch covers the fan-out of one batch.
	SpanKindDispatch SpanKind = "dispatch"
	// SpanKindBackoff covers one retry wait.
	SpanKindBackoff SpanKind = "backoff"
	// SpanKindHandler covers the handlers of a single update.
	SpanKindHandler SpanKind = "handler"
	// SpanKindCustom is free for application spans.
	SpanKindCustom SpanKind = "custom"
)

// Span is one timed unit of work inside a trace. Child spans hang off
// their parent, so exporting the root delivers the whole tree.
type Span struct {
	SpanID     string                 `json:"span_id"`
	TraceID    string                 `json:"trace_id"`
	ParentID   string                 `json:"parent_id,omitempty"`
	Name       string                 `json:"name"`
	Kind       SpanKind               `json:"kind"`
	StartTime  time.Time              `json:"start_time"`
	EndTime    time.Time              `json:"end_time,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
	Children   []*Span                `json:"children,omitempty"`
	Status     string                 `json:"status"` // "running", "ok", "error"
	Error      string                 `json:"error,omitempty"`
	mu         sync.Mutex
}

// DurationMs returns how long the span ran, in milliseconds. A span
// that has not ended yet is measured against the current time.
func (s *Span) DurationMs() float64 {
	s.mu.Lock()
	end := s.EndTime
	s.mu.Unlock()

	d := time.Since(s.StartTime)
	if !end.IsZero() {
		d = end.Sub(s.StartTime)
	}
	return float64(d) / float64(time.Millisecond)
}

// End records the outcome. The first call wins, a span cannot be
// re-opened or re-ended.
func (s *Span) End(status string, errMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.EndTime.IsZero() {
		return
	}
	s.EndTime = time.Now()
	s.Status = status
	s.Error = errMsg
}

// SetAttribute attaches a key-value pair to the span.
func (s *Span) SetAttribute(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Attributes == nil {
		s.Attributes = make(map[string]interface{})
	}
	s.Attributes[key] = value
}

func (s *Span) addChild(child *Span) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Children = append(s.Children, child)
}

// SpanExporter receives finished root spans.
type SpanExporter interface {
	Export(span *Span)
}

// NullSpanExporter drops everything.
type NullSpanExporter struct{}

func (e *NullSpanExporter) Export(span *Span) {}

// ConsoleSpanExporter writes one log line per root span.
type ConsoleSpanExporter struct{}

func (e *ConsoleSpanExporter) Export(span *Span) {
	log.Printf("[Trace] %s %s | %s | %.1fms | %d children",
		span.Kind, span.Name, span.Status, span.DurationMs(), len(span.Children))
}

// CallbackSpanExporter hands each root span to Fn. Tests and custom
// sinks use this.
type CallbackSpanExporter struct {
	Fn func(span *Span)
}

func (e *CallbackSpanExporter) Export(span *Span) {
	e.Fn(span)
}

// Tracer builds span trees and exports each tree when its root ends.
// A nil *Tracer is valid and records nothing, so the engine can call
// it unconditionally.
type Tracer struct {
	exporter SpanExporter
	enabled  bool
	traceID  string
	stack    []*Span
	mu       sync.Mutex
}

// NewTracer creates a tracer. A nil exporter discards everything.
func NewTracer(exporter SpanExporter, enabled bool) *Tracer {
	if exporter == nil {
		exporter = &NullSpanExporter{}
	}
	return &Tracer{exporter: exporter, enabled: enabled}
}

// NewTrace discards the current span stack and starts a fresh trace.
// The engine calls this once per poll cycle so every cycle exports as
// its own tree.
func (t *Tracer) NewTrace() string {
	if t == nil {
		return ""
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.traceID = randomID(16)
	t.stack = nil
	return t.traceID
}

// StartSpan opens a span nested under the innermost open one.
func (t *Tracer) StartSpan(name string, kind SpanKind, attrs map[string]interface{}) *Span {
	if t == nil || !t.enabled {
		return &Span{Name: name, Kind: kind, Status: "ok"}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.traceID == "" {
		t.traceID = randomID(16)
	}

	span := &Span{
		SpanID:     randomID(6),
		TraceID:    t.traceID,
		Name:       name,
		Kind:       kind,
		StartTime:  time.Now(),
		Attributes: attrs,
		Status:     "running",
	}
	if parent := t.currentLocked(); parent != nil {
		span.ParentID = parent.SpanID
		parent.addChild(span)
	}
	t.stack = append(t.stack, span)
	return span
}

// EndSpan closes the span and, when it is a root, exports its tree.
// Spans ended out of order are removed from wherever they sit in the
// stack without disturbing the rest.
func (t *Tracer) EndSpan(span *Span, status string, errMsg string) {
	if t == nil || !t.enabled {
		return
	}

	span.End(status, errMsg)

	t.mu.Lock()
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i] == span {
			t.stack = append(t.stack[:i], t.stack[i+1:]...)
			break
		}
	}
	t.mu.Unlock()

	if span.ParentID == "" {
		t.exporter.Export(span)
	}
}

// currentLocked returns the innermost open span. Callers hold t.mu.
func (t *Tracer) currentLocked() *Span {
	if len(t.stack) == 0 {
		return nil
	}
	return t.stack[len(t.stack)-1]
}

func randomID(bytes int) string {
	b := make([]byte, bytes)
	rand.Read(b)
	return hex.EncodeToString(b)
}
