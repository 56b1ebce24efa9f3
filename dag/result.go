package dag

import "time"

// Node statuses.
const (
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// Result holds the outcome of a graph execution.
type Result struct {
	// Order lists node names in the order they were scheduled.
	Order       []string
	NodeResults map[string]NodeResult
	Duration    time.Duration
}

// NodeResult holds the outcome of a single node execution.
type NodeResult struct {
	Name     string
	Status   string
	Duration time.Duration
	Output   any
	Error    error
}

// Markers returns the marker count output by a completed detector node.
func (r NodeResult) Markers() int {
	n, _ := r.Output.(int)
	return n
}
