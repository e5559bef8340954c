package splice

import (
	"context"

	"github.com/gin-gonic/gin"
)

// HTTPMiddleware creates Gin middleware that splices requests carrying
// upstream trace context into a new root trace.
//
// Install it after the middleware that creates the server span (e.g.
// otelgin.Middleware), so an active span exists when it runs. Requests
// without a traceparent header, and protocol upgrades, pass through with no
// span manipulation.
func HTTPMiddleware(s *Splicer) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Request.Header
		if isUpgrade(h) || !HasTraceParent(h) {
			s.observer.PassedThrough()
			c.Next()
			return
		}

		s.Splice(c.Request.Context(), c.Request.URL.Path, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
