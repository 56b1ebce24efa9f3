package middleware

import (
	"net/http"
	"strconv"

	"github.com/kbukum/convokit/observability"
)

// Observe returns middleware that opens an http.request span per request and
// records request metrics. metrics may be nil.
func Observe(serviceName string, metrics *observability.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, op := observability.StartOperation(r.Context(), serviceName, r.Method+" "+r.URL.Path, observability.SpanHTTPRequest, metrics)

			rec := newRecorder(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := strconv.Itoa(rec.status)
			observability.SetSpanAttribute(ctx, "http.status_code", rec.status)
			observability.SetSpanAttribute(ctx, "http.response.body.size", rec.bytes)
			if rec.status >= 500 && metrics != nil {
				metrics.RecordError(ctx, "http_"+status, "server")
			}
			op.End(ctx, status, nil)
		})
	}
}
