package dag

import (
	"context"
	"time"

	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/observability"
)

// WithTracing wraps a Node with OpenTelemetry span creation.
// Each execution creates a span named "{prefix}.{nodeName}".
func WithTracing(node Node, prefix string) Node {
	return &tracingNode{inner: node, prefix: prefix}
}

type tracingNode struct {
	inner  Node
	prefix string
}

func (n *tracingNode) Name() string { return n.inner.Name() }

func (n *tracingNode) Run(ctx context.Context, state *State) (any, error) {
	spanName := n.prefix + "." + n.inner.Name()
	ctx, span := observability.StartSpan(ctx, spanName)
	defer span.End()

	observability.SetSpanAttribute(ctx, observability.AttrDetector, n.inner.Name())
	if m, err := Read(state, ModelPort); err == nil {
		observability.SetSpanAttribute(ctx, observability.AttrModelID, m.ID)
	}

	result, err := n.inner.Run(ctx, state)
	if err != nil {
		observability.SetSpanError(ctx, err)
	} else if markers, ok := result.(int); ok {
		observability.SetSpanAttribute(ctx, observability.AttrMarkers, markers)
	}

	return result, err
}

// WithMetrics wraps a Node with detector metric recording.
func WithMetrics(node Node, metrics *observability.Metrics) Node {
	return &metricsNode{inner: node, metrics: metrics}
}

type metricsNode struct {
	inner   Node
	metrics *observability.Metrics
}

func (n *metricsNode) Name() string { return n.inner.Name() }

func (n *metricsNode) Run(ctx context.Context, state *State) (any, error) {
	start := time.Now()
	result, err := n.inner.Run(ctx, state)
	duration := time.Since(start)

	status := "ok"
	if err != nil {
		status = "error"
		n.metrics.RecordError(ctx, "execute", n.inner.Name())
	}
	markers, _ := result.(int)
	n.metrics.RecordDetectorRun(ctx, n.inner.Name(), status, duration, markers)

	return result, err
}

// WithLogging wraps a Node with execution logging.
func WithLogging(node Node, log *logger.Logger) Node {
	return &loggingNode{inner: node, log: log}
}

type loggingNode struct {
	inner Node
	log   *logger.Logger
}

func (n *loggingNode) Name() string { return n.inner.Name() }

func (n *loggingNode) Run(ctx context.Context, state *State) (any, error) {
	start := time.Now()
	result, err := n.inner.Run(ctx, state)

	fields := logger.DurationFields("dag.run", time.Since(start))
	fields[logger.FieldDetector] = n.inner.Name()

	log := n.log.WithContext(ctx)
	if err != nil {
		log.Error("detector failed", logger.MergeWithError(fields, err))
	} else {
		if markers, ok := result.(int); ok {
			fields[logger.FieldMarkers] = markers
		}
		log.Debug("detector completed", fields)
	}

	return result, err
}
