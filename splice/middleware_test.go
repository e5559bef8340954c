package splice

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const sampleTraceParent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"

// setupTestRouter builds a router with server-span instrumentation ahead of
// the splicer, mirroring the production middleware order.
func setupTestRouter(tp *sdktrace.TracerProvider, splicer *Splicer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(otelgin.Middleware("test-service",
		otelgin.WithTracerProvider(tp),
		otelgin.WithPropagators(propagation.TraceContext{}),
	))
	router.Use(HTTPMiddleware(splicer))
	return router
}

func TestHTTPMiddlewarePassThroughWithoutTraceParent(t *testing.T) {
	sr, tp := newRecorder()
	obs := &countObserver{}
	router := setupTestRouter(tp, New(WithTracerProvider(tp), WithObserver(obs)))

	var handlerSC trace.SpanContext
	router.GET("/orders", func(c *gin.Context) {
		handlerSC = trace.SpanFromContext(c.Request.Context()).SpanContext()
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/orders", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, obs.passed)
	assert.Equal(t, 0, obs.spliced)

	// Only the server span exists, unrenamed and unannotated.
	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, handlerSC, spans[0].SpanContext(), "handler must run under the pre-existing span")
	assert.NotEqual(t, DefaultSentinelName, spans[0].Name())
	_, ok := attrValue(spans[0].Attributes(), AttrLinkedTrace)
	assert.False(t, ok, "pass-through must not annotate the span")
}

func TestHTTPMiddlewareSplicesUpstreamContext(t *testing.T) {
	sr, tp := newRecorder()
	obs := &countObserver{}
	router := setupTestRouter(tp, New(WithTracerProvider(tp), WithObserver(obs)))

	var handlerSC trace.SpanContext
	router.GET("/orders", func(c *gin.Context) {
		handlerSC = trace.SpanFromContext(c.Request.Context()).SpanContext()
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest("GET", "/orders", nil)
	req.Header.Set("traceparent", sampleTraceParent)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, obs.spliced)

	spans := sr.Ended()
	require.Len(t, spans, 2)

	// The server span stays on the upstream trace; the root starts a new one.
	var root, orig sdktrace.ReadOnlySpan
	for _, s := range spans {
		if s.SpanContext().TraceID().String() == "4bf92f3577b34da6a3ce929d0e0e4736" {
			orig = s
		} else {
			root = s
		}
	}
	require.NotNil(t, orig, "server span must remain on the upstream trace id")
	require.NotNil(t, root)

	assert.Equal(t, DefaultSentinelName, orig.Name())
	assert.False(t, root.Parent().IsValid())
	assert.Equal(t, handlerSC, root.SpanContext(), "handler must run under the new root")

	// The root carries the server span's original name.
	origName, ok := attrValue(orig.Attributes(), AttrOriginalName)
	require.True(t, ok)
	assert.Equal(t, origName.AsString(), root.Name())

	path, ok := attrValue(orig.Attributes(), AttrURLPath)
	require.True(t, ok)
	assert.Equal(t, "/orders", path.AsString())

	// Cross-links: root -> server span, server span -> root.
	require.Len(t, root.Links(), 1)
	assert.Equal(t, orig.SpanContext(), root.Links()[0].SpanContext)
	require.Len(t, orig.Links(), 1)
	assert.Equal(t, root.SpanContext(), orig.Links()[0].SpanContext)
}

func TestHTTPMiddlewareSkipsUpgradeRequests(t *testing.T) {
	sr, tp := newRecorder()
	obs := &countObserver{}
	router := setupTestRouter(tp, New(WithTracerProvider(tp), WithObserver(obs)))

	router.GET("/ws", func(c *gin.Context) {
		c.Status(http.StatusSwitchingProtocols)
	})

	req := httptest.NewRequest("GET", "/ws", nil)
	req.Header.Set("traceparent", sampleTraceParent)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 1, obs.passed)
	assert.Equal(t, 0, obs.spliced)
	require.Len(t, sr.Ended(), 1, "upgrade requests must not be spliced")
	assert.NotEqual(t, DefaultSentinelName, sr.Ended()[0].Name())
}

func TestHTTPMiddlewareHeaderCaseInsensitive(t *testing.T) {
	sr, tp := newRecorder()
	router := setupTestRouter(tp, New(WithTracerProvider(tp)))

	router.GET("/orders", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/orders", nil)
	req.Header.Set("TraceParent", sampleTraceParent)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Len(t, sr.Ended(), 2, "mixed-case header must still trigger the splice")
}
