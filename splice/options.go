package splice

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultSentinelName is the name given to the original server span after its
// identity has been transplanted onto the new root span.
const DefaultSentinelName = "LinkedApiSpan"

// instrumentation scope reported on spans started by this package.
const tracerName = "github.com/tracekit/otellink/splice"

// Observer receives per-request splice outcomes. Implementations must be
// safe for concurrent use; the splicer itself holds no cross-request state.
type Observer interface {
	// Spliced is called when a request was detached into a new root trace.
	Spliced()
	// PassedThrough is called when the request had no upstream context and
	// was delegated untouched.
	PassedThrough()
	// Degraded is called when upstream context was present but the active
	// span did not support splicing (no-op tracer, non-recording span).
	Degraded()
}

type nopObserver struct{}

func (nopObserver) Spliced()       {}
func (nopObserver) PassedThrough() {}
func (nopObserver) Degraded()      {}

// Splicer performs the trace transplant. Zero-value is not usable; construct
// with New.
type Splicer struct {
	tracer   trace.Tracer
	sentinel string
	logger   *zap.Logger
	observer Observer
}

// Option configures a Splicer.
type Option func(*Splicer)

// WithTracerProvider sets the provider used to start new root spans.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Splicer) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithSentinelName overrides the name assigned to the original span at the
// splice point.
func WithSentinelName(name string) Option {
	return func(s *Splicer) {
		if name != "" {
			s.sentinel = name
		}
	}
}

// WithLogger sets a logger for splice-path diagnostics. Only degrade
// decisions are logged, at debug level; handler errors are never logged here.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Splicer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver sets an outcome observer, typically a metrics collector.
func WithObserver(o Observer) Option {
	return func(s *Splicer) {
		if o != nil {
			s.observer = o
		}
	}
}

// New creates a Splicer.
func New(opts ...Option) *Splicer {
	s := &Splicer{
		tracer:   otel.GetTracerProvider().Tracer(tracerName),
		sentinel: DefaultSentinelName,
		logger:   zap.NewNop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
