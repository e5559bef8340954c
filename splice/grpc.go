package splice

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// GRPCUnaryInterceptor creates a gRPC unary server interceptor that splices
// requests carrying upstream trace context into a new root trace.
//
// Install it after the interceptor or stats handler that creates the server
// span (e.g. otelgrpc). Requests without traceparent metadata pass through
// untouched; handler errors are returned unchanged.
func GRPCUnaryInterceptor(s *Splicer) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok || !HasTraceParentMD(md) {
			s.observer.PassedThrough()
			return handler(ctx, req)
		}

		var (
			resp interface{}
			err  error
		)
		s.Splice(ctx, info.FullMethod, func(ctx context.Context) {
			resp, err = handler(ctx, req)
		})
		return resp, err
	}
}

// GRPCStreamInterceptor creates a gRPC stream server interceptor. Streams are
// not single request/response cycles, so they are always delegated without
// span manipulation; the interceptor exists so both transport variants can be
// installed uniformly.
func GRPCStreamInterceptor(s *Splicer) grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		s.observer.PassedThrough()
		return handler(srv, ss)
	}
}
