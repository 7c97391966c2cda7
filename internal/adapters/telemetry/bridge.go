package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/cmakekit/internal/core/ports"
	"go.trai.ch/zerr"
)

// Bridge is an sdktrace.SpanProcessor that reports pipeline steps to a Renderer.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a Bridge reporting to renderer. A nil renderer disables reporting.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// OnStart announces a step. The renderer names the step after the span.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	id, ok := b.stepID(s.SpanContext())
	if !ok {
		return
	}

	parentID := ""
	if psc := trace.SpanContextFromContext(parent); psc.IsValid() {
		parentID = psc.SpanID().String()
	}
	b.renderer.OnTaskStart(id, parentID, s.Name(), s.StartTime())
}

// OnEnd reports the outcome of a step.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	id, ok := b.stepID(s.SpanContext())
	if !ok {
		return
	}
	b.renderer.OnTaskComplete(id, s.EndTime(), stepFailure(s))
}

func (b *Bridge) stepID(sc trace.SpanContext) (string, bool) {
	if b.renderer == nil || !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

// stepFailure returns nil for a successful step, otherwise the recorded reason
// followed by the command line the step ran.
func stepFailure(s sdktrace.ReadOnlySpan) error {
	status := s.Status()
	if status.Code != codes.Error {
		return nil
	}

	reason := status.Description
	if reason == "" {
		reason = "step failed"
	}
	if command := stringAttr(s.Attributes(), ports.AttrCommand); command != "" {
		reason += " (" + command + ")"
	}
	return zerr.New(reason)
}

func stringAttr(attrs []attribute.KeyValue, key string) string {
	for _, kv := range attrs {
		if string(kv.Key) == key {
			return kv.Value.Emit()
		}
	}
	return ""
}

// ForceFlush implements sdktrace.SpanProcessor; the bridge holds no spans.
func (b *Bridge) ForceFlush(context.Context) error { return nil }

// Shutdown implements sdktrace.SpanProcessor; the bridge holds no spans.
func (b *Bridge) Shutdown(context.Context) error { return nil }
