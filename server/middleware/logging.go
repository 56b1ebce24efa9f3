package middleware

import (
	"net/http"
	"time"

	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/util"
)

var quietPaths = []string{"/health", "/info"}

// RequestLogger returns middleware that logs every request with method,
// path, status code, body size and duration. Health and info probes are skipped.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if util.Contains(quietPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			rec := newRecorder(w)
			next.ServeHTTP(rec, r)

			fields := logger.DurationFields(r.Method+" "+r.URL.Path, time.Since(start))
			fields[logger.FieldStatus] = rec.status
			fields[logger.FieldBytes] = rec.bytes

			l := log.WithContext(r.Context())
			switch {
			case rec.status >= 500:
				l.Error("Request completed", fields)
			case rec.status >= 400:
				l.Warn("Request completed", fields)
			default:
				l.Debug("Request completed", fields)
			}
		})
	}
}
