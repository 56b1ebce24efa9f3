package detect

import (
	"context"
	"strconv"

	"github.com/kbukum/convokit/conversation"
	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/tokentree"
)

// Overlap marks the boundaries of simultaneous speech.
type Overlap struct {
	log *logger.Logger
}

// NewOverlap creates an overlap detector.
func NewOverlap() *Overlap {
	return &Overlap{log: logger.Get("detect.overlap")}
}

// Name implements Detector.
func (d *Overlap) Name() string { return "overlap" }

// Apply inserts four zero-width markers sharing one overlap id wherever the
// next speaker starts before the current one finishes.
func (d *Overlap) Apply(_ context.Context, m *conversation.Model) error {
	var pending batch
	for p := range conversation.SpeechPairs(m.TurnMap(true)) {
		cur, next := p.Cur, p.Next
		if !speakerPair(cur, next) || cur.Last().Speaker == next.First().Speaker {
			continue
		}
		if next.First().Start >= cur.Last().End {
			continue
		}

		curStart, curEnd := intersecting(cur.Tokens, next.First().Start, next.Last().End)
		nextStart, nextEnd := intersecting(next.Tokens, cur.First().Start, cur.Last().End)
		if curStart < 0 && nextStart < 0 {
			continue
		}
		if curStart < 0 {
			curStart, curEnd = len(cur.Tokens)-1, len(cur.Tokens)-1
		}
		if nextStart < 0 {
			nextStart, nextEnd = 0, 0
		}

		info := strconv.Itoa(m.NextOverlapID())
		bound := func(kind marker.Kind, at float64, tok tokentree.Token) {
			pending.add(at, at, marker.New(kind, info, tok.Speaker))
		}
		bound(marker.OverlapFirstStart, cur.Tokens[curStart].Start, cur.Tokens[curStart])
		bound(marker.OverlapFirstEnd, cur.Tokens[curEnd].End, cur.Tokens[curEnd])
		bound(marker.OverlapSecondStart, next.Tokens[nextStart].Start, next.Tokens[nextStart])
		bound(marker.OverlapSecondEnd, next.Tokens[nextEnd].End, next.Tokens[nextEnd])
	}
	pending.commit(m, d.log, d.Name())
	return nil
}

// intersecting returns the first and last index of tokens whose [Start, End)
// interval intersects [start, end), or -1, -1 when none does.
func intersecting(tokens []tokentree.Token, start, end float64) (int, int) {
	first, last := -1, -1
	for i, t := range tokens {
		if t.Start < end && start < t.End {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	return first, last
}
