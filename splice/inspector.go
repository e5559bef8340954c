package splice

import (
	"net/http"

	"golang.org/x/net/http/httpguts"
	"google.golang.org/grpc/metadata"
)

// TraceParentHeader is the W3C trace-context propagation header. Its mere
// presence (any non-empty value) selects the splice path; format validation
// is left to the tracing SDK's propagator.
const TraceParentHeader = "traceparent"

// HasTraceParent reports whether the header bag carries a non-empty
// traceparent value. Lookup is case-insensitive and tolerates repeated
// headers; malformed values still count as present.
func HasTraceParent(h http.Header) bool {
	for _, v := range h.Values(TraceParentHeader) {
		if v != "" {
			return true
		}
	}
	return false
}

// HasTraceParentMD is the gRPC metadata variant of HasTraceParent. Metadata
// keys are lowercased by the grpc library, so a plain lookup suffices.
func HasTraceParentMD(md metadata.MD) bool {
	for _, v := range md.Get(TraceParentHeader) {
		if v != "" {
			return true
		}
	}
	return false
}

// isUpgrade reports whether the request is a protocol upgrade (websocket and
// friends). Upgraded connections are not single request/response cycles, so
// the splicer leaves them alone.
func isUpgrade(h http.Header) bool {
	return httpguts.HeaderValuesContainsToken(h["Connection"], "Upgrade")
}
