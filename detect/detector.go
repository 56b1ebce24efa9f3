package detect

import (
	"context"

	"github.com/kbukum/convokit/conversation"
	"github.com/kbukum/convokit/errors"
	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/turn"
)

// Detector is one annotation pass over a conversation model.
type Detector interface {
	// Name identifies the detector in pipelines, logs, and errors.
	Name() string
	// Apply inserts the detector's markers into m. On error m is unchanged.
	Apply(ctx context.Context, m *conversation.Model) error
}

// Run applies detectors to m in order and stops at the first failure.
// Failures are returned as DETECTOR_FAILED errors naming the detector.
func Run(ctx context.Context, m *conversation.Model, detectors ...Detector) error {
	for _, d := range detectors {
		if err := ctx.Err(); err != nil {
			return errors.DetectorFailed(d.Name(), err)
		}
		if err := d.Apply(ctx, m); err != nil {
			if errors.HasCode(err, errors.ErrCodeDetectorFailed) {
				return err
			}
			return errors.DetectorFailed(d.Name(), err)
		}
	}
	return nil
}

// insertion is a marker waiting for the scan to finish.
type insertion struct {
	start, end float64
	marker     marker.Marker
}

// batch collects insertions during a scan.
type batch []insertion

func (b *batch) add(start, end float64, mk marker.Marker) {
	*b = append(*b, insertion{start: start, end: end, marker: mk})
}

// commit inserts every pending marker and rebuilds the turn map once.
func (b batch) commit(m *conversation.Model, log *logger.Logger, name string) {
	for _, ins := range b {
		m.InsertMarker(ins.start, ins.end, ins.marker)
	}
	m.RebuildTurnMap()
	log.Debug("markers inserted", logger.Fields(
		logger.FieldModelID, m.ID,
		logger.FieldDetector, name,
		logger.FieldMarkers, len(b),
	))
}

// speakerPair reports whether both turns carry speech. Pairs come from
// conversation.SpeechPairs, so this only rules out the closing sentinel.
func speakerPair(cur, next turn.Turn) bool {
	return !cur.IsEmpty() && !next.IsEmpty() && !cur.IsMarker() && !next.IsMarker()
}

// floorTransfer is the offset between the end of cur and the start of next.
func floorTransfer(cur, next turn.Turn) float64 {
	return next.First().Start - cur.Last().End
}
