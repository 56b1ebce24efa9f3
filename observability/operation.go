package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/convokit/errors"
	"github.com/kbukum/convokit/logger"
)

// Operation tracks one unit of work, an annotate call or an HTTP request,
// from its root span to its request metrics.
type Operation struct {
	Service   string
	Name      string
	RequestID string
	Started   time.Time

	span    trace.Span
	metrics *Metrics
}

type operationKey struct{}

// StartOperation opens spanName under ctx and records the request start.
// The request id is taken from ctx. metrics may be nil.
func StartOperation(ctx context.Context, service, name, spanName string, metrics *Metrics) (context.Context, *Operation) {
	op := &Operation{
		Service:   service,
		Name:      name,
		RequestID: logger.RequestID(ctx),
		Started:   time.Now(),
		metrics:   metrics,
	}
	ctx, op.span = StartSpan(ctx, spanName)
	op.span.SetAttributes(
		attribute.String(AttrServiceName, service),
		attribute.String(AttrOperationName, name),
	)
	if op.RequestID != "" {
		op.span.SetAttributes(attribute.String(AttrRequestID, op.RequestID))
	}
	if metrics != nil {
		metrics.RecordRequestStart(ctx)
	}
	return context.WithValue(ctx, operationKey{}, op), op
}

// OperationFromContext returns the innermost operation in ctx, or nil.
func OperationFromContext(ctx context.Context) *Operation {
	op, _ := ctx.Value(operationKey{}).(*Operation)
	return op
}

// End closes the span and records the request duration under status. A
// non-nil err fails the span and counts one error of its code.
func (op *Operation) End(ctx context.Context, status string, err error) {
	d := op.Elapsed()
	if err != nil {
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
		op.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		if op.metrics != nil {
			op.metrics.RecordError(ctx, ErrorType(err), op.Name)
		}
	}
	op.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, d.Milliseconds()),
	)
	op.span.End()

	if op.metrics != nil {
		op.metrics.RecordRequestEnd(ctx, op.Service, op.Name, status, d)
	}
}

// Elapsed returns the time since the operation started.
func (op *Operation) Elapsed() time.Duration {
	return time.Since(op.Started)
}

// ErrorType is the metric label for err: its AppError code, or INTERNAL_ERROR.
func ErrorType(err error) string {
	if appErr, ok := errors.AsAppError(err); ok {
		return string(appErr.Code)
	}
	return string(errors.ErrCodeInternal)
}
