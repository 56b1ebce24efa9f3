package dag

import (
	"context"

	"github.com/kbukum/convokit/detect"
	"github.com/kbukum/convokit/errors"
)

// Node is the execution unit in a DAG.
type Node interface {
	Name() string
	Run(ctx context.Context, state *State) (any, error)
}

// FromDetector bridges a detector into a DAG node. The node reads the model
// from ModelPort and outputs the number of markers the pass inserted.
func FromDetector(d detect.Detector) Node {
	return &detectorNode{detector: d}
}

type detectorNode struct {
	detector detect.Detector
}

func (n *detectorNode) Name() string { return n.detector.Name() }

func (n *detectorNode) Run(ctx context.Context, state *State) (any, error) {
	model, err := Read(state, ModelPort)
	if err != nil {
		return nil, errors.DetectorFailed(n.Name(), err)
	}

	before := model.Stats().TokenCount
	if err := detect.Run(ctx, model, n.detector); err != nil {
		return nil, err
	}
	return model.Stats().TokenCount - before, nil
}
