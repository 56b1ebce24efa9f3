// Package server exposes the annotation service over HTTP using Gin, with
// h2c so HTTP/2 clients work without TLS.
//
// # Middleware
//
// Built-in middleware (server/middleware) wraps the root handler:
//
//   - Recovery: panic recovery with structured logging
//   - RequestID: request id generation and propagation
//   - Observe: http.request spans and request metrics
//   - CORS: cross-origin resource sharing
//   - BodySizeLimit: request body cap
//   - RequestLogger: request logging with duration
//
// # Endpoints
//
//   - POST /v1/annotate?format=chat: annotate a transcript
//   - GET /health: health check aggregation
//   - GET /info: build and pipeline information
package server
