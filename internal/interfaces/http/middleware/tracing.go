package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns OpenTelemetry tracing middleware. It wraps otelgin and
// enriches each span with the request id and, when the request is
// authenticated, the requester's account id and role. Span names follow
// the "METHOD route_pattern" convention (e.g. "GET /api/v1/products/:id").
func Tracing(serviceName string) gin.HandlerFunc {
	base := otelgin.Middleware(serviceName)

	return func(c *gin.Context) {
		// otelgin drives the rest of the chain, so by the time it
		// returns the auth middleware has resolved the requester
		base(c)

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		if requestID := c.GetString("request_id"); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if requester, ok := GetRequester(c); ok {
			span.SetAttributes(
				attribute.String("account_id", requester.AccountID.String()),
				attribute.String("role", string(requester.Role)),
			)
		}
	}
}
