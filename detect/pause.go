package detect

import (
	"context"

	"github.com/kbukum/convokit/conversation"
	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/util"
)

// Pause marks silences between consecutive turns of the same speaker.
type Pause struct {
	cfg PauseConfig
	log *logger.Logger
}

// NewPause creates a pause detector. Zero-valued fields of cfg take defaults.
func NewPause(cfg PauseConfig) *Pause {
	cfg.ApplyDefaults()
	return &Pause{cfg: cfg, log: logger.Get("detect.pause")}
}

// Name implements Detector.
func (d *Pause) Name() string { return "pause" }

// Classify returns the marker payload for a rounded offset, or false when
// the offset falls in no band. Bands are tested latch, pause, micropause,
// large pause; the first match wins.
func (d *Pause) Classify(fto float64) (string, bool) {
	c := d.cfg
	switch {
	case fto >= c.LatchLower && fto < c.LatchUpper:
		return marker.LatchGlyph, true
	case fto >= c.PauseLower && fto <= c.PauseUpper:
		return util.FormatFloat(fto), true
	case fto >= c.MicroLower && fto < c.PauseLower:
		return util.FormatFloat(fto), true
	case fto >= c.LargeLower:
		return util.FormatFloat(fto), true
	}
	return "", false
}

// Apply inserts one pauses marker per same-speaker boundary between speech
// turns that falls in a band and is not already marked.
func (d *Pause) Apply(_ context.Context, m *conversation.Model) error {
	var pending batch
	for p := range conversation.SpeechPairs(m.TurnMap(true)) {
		cur, next := p.Cur, p.Next
		if !speakerPair(cur, next) || p.HasMarker(marker.Pause) {
			continue
		}
		speaker := cur.Last().Speaker
		if speaker != next.First().Speaker {
			continue
		}
		info, ok := d.Classify(util.Round(floorTransfer(cur, next), 2))
		if !ok {
			continue
		}
		pending.add(cur.Last().End, next.First().Start, marker.New(marker.Pause, info, speaker))
	}
	pending.commit(m, d.log, d.Name())
	return nil
}
