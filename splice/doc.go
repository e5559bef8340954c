/*
Package splice reshapes distributed-trace topology at a service boundary.

# Overview

When an inbound request carries upstream trace context (a W3C traceparent
header or its gRPC metadata equivalent), the instrumentation installed ahead
of this package creates the server span as a child of the caller's trace. That
keeps correlation but buries the service's own work inside someone else's
trace: no independent root, no independent duration, no independent sampling
decision.

This package detaches the in-process trace at that point. The active server
span is renamed to a sentinel and annotated, a new root span is started with a
fresh trace id carrying the original span's name and attributes, and the two
spans are cross-linked. The result is two traces in the backend — the caller's
(ending in the sentinel span) and the service's own (a browsable root) —
connected by links rather than parentage.

# Usage

	splicer := splice.New(
		splice.WithTracerProvider(tp),
		splice.WithLogger(logger),
	)

	// Gin: install after the middleware that creates the server span.
	router.Use(otelgin.Middleware("my-service"))
	router.Use(splice.HTTPMiddleware(splicer))

	// gRPC: unary requests are spliced, streams pass through.
	server := grpc.NewServer(
		grpc.UnaryInterceptor(splice.GRPCUnaryInterceptor(splicer)),
		grpc.StreamInterceptor(splice.GRPCStreamInterceptor(splicer)),
	)

# Behavior

Requests without a traceparent header are passed through untouched. Requests
whose active span cannot report its name (no-op tracer, sampled-out span with
a non-recording implementation) are also passed through, with zero mutations.
Handler errors and panics are never caught here; the new root span is ended on
every exit path and the failure propagates unchanged.
*/
package splice
