package splice

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Attributes recorded on the original span at the splice point.
const (
	// AttrLinkedTrace marks a span whose identity was moved to a new root.
	AttrLinkedTrace = attribute.Key("linked_trace")
	// AttrURLPath records the request path on the original span.
	AttrURLPath = attribute.Key("url.path")
	// AttrOriginalName preserves the original span name after the rename.
	AttrOriginalName = attribute.Key("linked_trace.original_name")
)

// readableSpan is the capability an active span must expose for splicing:
// bulk read of its current name and attribute set. The OpenTelemetry SDK's
// recording span satisfies it; no-op and non-recording spans do not, which is
// exactly the degrade signal.
type readableSpan interface {
	Name() string
	Attributes() []attribute.KeyValue
}

// Splice detaches the active span in ctx into a new root trace and runs
// invoke inside the new scope.
//
// The active span keeps running under the surrounding framework's lifetime,
// but is renamed to the sentinel, annotated with AttrLinkedTrace, AttrURLPath
// and AttrOriginalName, and linked to the new root. The new root takes the
// active span's pre-rename name, a value copy of its attribute set, and a
// link back to the active span's context when that context is valid. The new
// root is ended on every exit path, including a panicking invoke; panics and
// errors from invoke propagate unchanged.
//
// If the active span does not expose name access (no-op tracer, sampled-out
// non-recording span), invoke runs with ctx untouched and zero mutations
// occur. The mutation order below is load-bearing: the parent context is
// captured before any mutation, the rename lands before the new span starts,
// and the attribute copy reads the post-rename set.
func (s *Splicer) Splice(ctx context.Context, path string, invoke func(context.Context)) {
	active := trace.SpanFromContext(ctx)

	// Link target, captured before the span is touched.
	parent := active.SpanContext()

	readable, ok := active.(readableSpan)
	if !ok {
		s.observer.Degraded()
		s.logger.Debug("active span does not expose name access, skipping splice",
			zap.String("path", path),
		)
		invoke(ctx)
		return
	}
	name := readable.Name()

	active.SetAttributes(
		AttrLinkedTrace.Bool(true),
		AttrURLPath.String(path),
		AttrOriginalName.String(name),
	)
	active.SetName(s.sentinel)

	// WithNewRoot gives the span a fresh trace id while the request
	// context's deadline and cancellation keep governing the handler.
	opts := []trace.SpanStartOption{trace.WithNewRoot()}
	if parent.IsValid() {
		opts = append(opts, trace.WithLinks(trace.Link{SpanContext: parent}))
	}
	newCtx, root := s.tracer.Start(ctx, name, opts...)
	defer root.End()

	root.SetAttributes(readable.Attributes()...)
	active.AddLink(trace.Link{SpanContext: root.SpanContext()})

	s.observer.Spliced()
	invoke(newCtx)
}
