package dag

import (
	"fmt"
	"slices"

	"github.com/kbukum/convokit/errors"
)

// Graph declares nodes and edges (dependency relationships).
type Graph struct {
	Nodes map[string]Node
	Edges []Edge
}

// Edge represents a dependency: To depends on From.
type Edge struct {
	From string
	To   string
}

// BuildLevels uses Kahn's algorithm to group nodes by dependency level.
// Names within a level are sorted. Unknown edge endpoints and cycles are
// PIPELINE_INVALID.
func BuildLevels(g *Graph) ([][]string, error) {
	inDegree := make(map[string]int)
	dependents := make(map[string][]string) // from -> [to...]

	for name := range g.Nodes {
		inDegree[name] = 0
	}

	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.From]; !ok {
			return nil, errors.PipelineInvalid(fmt.Sprintf("edge references unknown node %q", e.From))
		}
		if _, ok := g.Nodes[e.To]; !ok {
			return nil, errors.PipelineInvalid(fmt.Sprintf("edge references unknown node %q", e.To))
		}
		inDegree[e.To]++
		dependents[e.From] = append(dependents[e.From], e.To)
	}

	var queue []string
	for name, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, name)
		}
	}

	var levels [][]string
	visited := 0

	for len(queue) > 0 {
		slices.Sort(queue)
		levels = append(levels, queue)
		visited += len(queue)

		var next []string
		for _, name := range queue {
			for _, dep := range dependents[name] {
				inDegree[dep]--
				if inDegree[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		queue = next
	}

	if visited != len(g.Nodes) {
		return nil, errors.PipelineInvalid(fmt.Sprintf("cycle detected, ordered %d of %d detectors", visited, len(g.Nodes)))
	}

	return levels, nil
}

// Order flattens the levels of g into the execution order.
func Order(g *Graph) ([]string, error) {
	levels, err := BuildLevels(g)
	if err != nil {
		return nil, err
	}
	var order []string
	for _, level := range levels {
		order = append(order, level...)
	}
	return order, nil
}
