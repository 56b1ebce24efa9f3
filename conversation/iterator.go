package conversation

import (
	"iter"
	"slices"

	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/turn"
)

// Pairs yields adjacent turn pairs of tm in id order. The final turn is
// paired with the empty sentinel turn.
func Pairs(tm *turn.Map) iter.Seq2[turn.Turn, turn.Turn] {
	return func(yield func(turn.Turn, turn.Turn) bool) {
		turns := tm.Turns()
		for i, cur := range turns {
			var next turn.Turn
			if i+1 < len(turns) {
				next = turns[i+1]
			}
			if !yield(cur, next) {
				return
			}
		}
	}
}

// SpeechPair is two consecutive speech turns and the marker turns between
// them. Next is the empty sentinel after the last speech turn.
type SpeechPair struct {
	Cur     turn.Turn
	Next    turn.Turn
	Between []turn.Turn
}

// HasMarker reports whether a marker turn between Cur and Next holds a
// marker of one of kinds.
func (p SpeechPair) HasMarker(kinds ...marker.Kind) bool {
	for _, t := range p.Between {
		for _, tok := range t.Tokens {
			if slices.Contains(kinds, marker.Kind(tok.Speaker)) {
				return true
			}
		}
	}
	return false
}

// SpeechPairs yields each speech turn of tm with the next speech turn,
// looking past marker turns the way the turn builder does. Marker turns
// before the first speech turn are not reported.
func SpeechPairs(tm *turn.Map) iter.Seq[SpeechPair] {
	return func(yield func(SpeechPair) bool) {
		var cur turn.Turn
		var between []turn.Turn
		for _, t := range tm.Turns() {
			if t.IsMarker() {
				if !cur.IsEmpty() {
					between = append(between, t)
				}
				continue
			}
			if t.IsEmpty() {
				continue
			}
			if !cur.IsEmpty() && !yield(SpeechPair{Cur: cur, Next: t, Between: between}) {
				return
			}
			cur, between = t, nil
		}
		if !cur.IsEmpty() {
			yield(SpeechPair{Cur: cur, Between: between})
		}
	}
}

// Pairs yields adjacent pairs of the live turn mapping.
func (m *Model) Pairs() iter.Seq2[turn.Turn, turn.Turn] { return Pairs(m.turns) }

// Turns yields the turns of the live turn mapping.
func (m *Model) Turns() iter.Seq[turn.Turn] { return m.turns.All() }

// PairIterator is a pull-style, restartable walk over adjacent turn pairs
// of a frozen copy of the turn mapping.
type PairIterator struct {
	turns []turn.Turn
	pos   int
}

// PairIterator returns an iterator over a deep copy of the current turns, so
// insertions into the model do not disturb it.
func (m *Model) PairIterator() *PairIterator {
	return &PairIterator{turns: m.turns.Clone().Turns()}
}

// Next returns the next pair. ok is false once every turn has been visited.
func (it *PairIterator) Next() (cur, next turn.Turn, ok bool) {
	if it.pos >= len(it.turns) {
		return turn.Turn{}, turn.Turn{}, false
	}
	cur = it.turns[it.pos]
	if it.pos+1 < len(it.turns) {
		next = it.turns[it.pos+1]
	}
	it.pos++
	return cur, next, true
}

// Reset restarts the iteration from the first turn.
func (it *PairIterator) Reset() { it.pos = 0 }
