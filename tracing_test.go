package telegram

import "testing"

func TestTracer_NilReceiverIsSafe(t *testing.T) {
	var tr *Tracer
	tr.NewTrace()
	span := tr.StartSpan("anything", SpanKindCustom, nil)
	if span == nil {
		t.Fatal("nil tracer must still hand back a usable span")
	}
	span.SetAttribute("k", "v")
	tr.EndSpan(span, "ok", "")
}

func TestTracer_DisabledExportsNothing(t *testing.T) {
	exported := 0
	tr := NewTracer(&CallbackSpanExporter{Fn: func(span *Span) { exported++ }}, false)

	tr.NewTrace()
	span := tr.StartSpan("root", SpanKindCustom, nil)
	tr.EndSpan(span, "ok", "")

	if exported != 0 {
		t.Fatalf("disabled tracer exported %d spans", exported)
	}
}

func TestTracer_ExportsOnlyRootsWithChildrenAttached(t *testing.T) {
	var roots []*Span
	tr := NewTracer(&CallbackSpanExporter{Fn: func(span *Span) {
		roots = append(roots, span)
	}}, true)

	tr.NewTrace()
	root := tr.StartSpan("root", SpanKindCycle, nil)
	child := tr.StartSpan("child", SpanKindAcquire, nil)
	grand := tr.StartSpan("grandchild", SpanKindHandler, nil)
	tr.EndSpan(grand, "ok", "")
	tr.EndSpan(child, "ok", "")
	tr.EndSpan(root, "ok", "")

	if len(roots) != 1 {
		t.Fatalf("expected exactly the root exported, got %d spans", len(roots))
	}
	got := roots[0]
	if got.Name != "root" || got.ParentID != "" {
		t.Fatalf("expected the root span, got %+v", got)
	}
	if len(got.Children) != 1 || got.Children[0].Name != "child" {
		t.Fatalf("expected child attached to root, got %+v", got.Children)
	}
	if len(got.Children[0].Children) != 1 || got.Children[0].Children[0].Name != "grandchild" {
		t.Fatal("expected grandchild attached to child")
	}
	if got.Children[0].ParentID != got.SpanID {
		t.Fatal("child should carry the root's span id as parent")
	}
	if got.TraceID == "" || got.Children[0].TraceID != got.TraceID {
		t.Fatal("all spans of one trace should share the trace id")
	}
}

func TestTracer_NewTracePerCycleSeparatesTraces(t *testing.T) {
	var roots []*Span
	tr := NewTracer(&CallbackSpanExporter{Fn: func(span *Span) {
		roots = append(roots, span)
	}}, true)

	first := tr.NewTrace()
	s1 := tr.StartSpan("a", SpanKindCycle, nil)
	tr.EndSpan(s1, "ok", "")

	second := tr.NewTrace()
	s2 := tr.StartSpan("b", SpanKindCycle, nil)
	tr.EndSpan(s2, "error", "boom")

	if first == second {
		t.Fatal("expected distinct trace ids per cycle")
	}
	if len(roots) != 2 {
		t.Fatalf("expected 2 exported roots, got %d", len(roots))
	}
	if roots[0].TraceID == roots[1].TraceID {
		t.Fatal("roots of different traces should not share a trace id")
	}
	if roots[1].Status != "error" || roots[1].Error != "boom" {
		t.Fatalf("expected error status recorded, got %+v", roots[1])
	}
}

func TestSpan_EndRecordsStatusAndDuration(t *testing.T) {
	tr := NewTracer(nil, true)
	span := tr.StartSpan("x", SpanKindCustom, map[string]interface{}{"n": 1})
	if span.Status != "running" {
		t.Fatalf("expected running, got %s", span.Status)
	}
	tr.EndSpan(span, "ok", "")
	if span.Status != "ok" {
		t.Fatalf("expected ok, got %s", span.Status)
	}
	if span.EndTime.IsZero() {
		t.Fatal("expected end time stamped")
	}
	if span.DurationMs() < 0 {
		t.Fatal("expected non-negative duration")
	}
	if span.Attributes["n"] != 1 {
		t.Fatalf("expected attribute preserved, got %v", span.Attributes)
	}
}
