package detect

import (
	"context"

	"github.com/kbukum/convokit/conversation"
	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/util"
)

// Gap marks silences at speaker changes.
type Gap struct {
	cfg GapConfig
	log *logger.Logger
}

// NewGap creates a gap detector. Zero-valued fields of cfg take defaults.
func NewGap(cfg GapConfig) *Gap {
	cfg.ApplyDefaults()
	return &Gap{cfg: cfg, log: logger.Get("detect.gap")}
}

// Name implements Detector.
func (d *Gap) Name() string { return "gap" }

// Apply inserts one gaps marker between consecutive speech turns of
// different speakers whose rounded offset reaches the lower bound. Marker
// turns in between are looked past; a span already holding a gap is kept.
func (d *Gap) Apply(_ context.Context, m *conversation.Model) error {
	var pending batch
	for p := range conversation.SpeechPairs(m.TurnMap(true)) {
		cur, next := p.Cur, p.Next
		if !speakerPair(cur, next) || cur.Last().Speaker == next.First().Speaker || p.HasMarker(marker.Gap) {
			continue
		}
		fto := util.Round(floorTransfer(cur, next), 2)
		if fto < d.cfg.LowerBound {
			continue
		}
		info := util.FormatFloat(util.Round(fto, 1))
		pending.add(cur.Last().End, next.First().Start, marker.New(marker.Gap, info, marker.NoSpeaker))
	}
	pending.commit(m, d.log, d.Name())
	return nil
}
