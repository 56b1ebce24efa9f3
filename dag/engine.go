package dag

import (
	"context"
	"time"

	"github.com/kbukum/convokit/errors"
)

// Engine executes a graph in dependency order, one node at a time.
type Engine struct{}

// NodeFilter returns true if a node should execute.
type NodeFilter func(nodeName string, state *State) bool

// Execute runs every node of g. Execution stops at the first failing node;
// its error is returned together with the partial result, and the nodes
// that never ran are marked skipped.
func (e *Engine) Execute(ctx context.Context, g *Graph, state *State) (*Result, error) {
	return e.ExecuteFiltered(ctx, g, state, nil)
}

// ExecuteFiltered runs only the nodes that pass filter; the rest are
// marked skipped.
func (e *Engine) ExecuteFiltered(ctx context.Context, g *Graph, state *State, filter NodeFilter) (*Result, error) {
	start := time.Now()

	order, err := Order(g)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Order:       order,
		NodeResults: make(map[string]NodeResult, len(order)),
	}
	defer func() { result.Duration = time.Since(start) }()

	for i, name := range order {
		if err := ctx.Err(); err != nil {
			skip(result, order[i:])
			return result, errors.DetectorFailed(name, err)
		}
		if filter != nil && !filter(name, state) {
			result.NodeResults[name] = NodeResult{Name: name, Status: StatusSkipped}
			continue
		}

		nr := e.executeNode(ctx, g.Nodes[name], state)
		result.NodeResults[name] = nr
		if nr.Error != nil {
			skip(result, order[i+1:])
			return result, nr.Error
		}
	}

	return result, nil
}

func (e *Engine) executeNode(ctx context.Context, node Node, state *State) NodeResult {
	start := time.Now()
	output, err := node.Run(ctx, state)
	duration := time.Since(start)

	if err != nil {
		return NodeResult{
			Name:     node.Name(),
			Status:   StatusFailed,
			Duration: duration,
			Error:    err,
		}
	}

	return NodeResult{
		Name:     node.Name(),
		Status:   StatusCompleted,
		Duration: duration,
		Output:   output,
	}
}

func skip(result *Result, names []string) {
	for _, name := range names {
		result.NodeResults[name] = NodeResult{Name: name, Status: StatusSkipped}
	}
}
