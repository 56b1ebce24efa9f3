package turn

import (
	"iter"

	"github.com/kbukum/convokit/tokentree"
)

// Turn is an ordered run of tokens with a sequential id starting at 1.
// The zero Turn is the empty sentinel.
type Turn struct {
	ID     int               `json:"id"`
	Tokens []tokentree.Token `json:"tokens"`
}

// IsEmpty reports whether t is the sentinel turn.
func (t Turn) IsEmpty() bool { return len(t.Tokens) == 0 }

// First returns the first token, or the zero token for the sentinel.
func (t Turn) First() tokentree.Token {
	if t.IsEmpty() {
		return tokentree.Token{}
	}
	return t.Tokens[0]
}

// Last returns the last token, or the zero token for the sentinel.
func (t Turn) Last() tokentree.Token {
	if t.IsEmpty() {
		return tokentree.Token{}
	}
	return t.Tokens[len(t.Tokens)-1]
}

// Speaker returns the speaker label of the first token.
func (t Turn) Speaker() string { return t.First().Speaker }

// Span returns the earliest start and latest end over the turn's tokens.
// A token nested inside an earlier one does not shorten the span.
func (t Turn) Span() (start, end float64) {
	for i, tok := range t.Tokens {
		if i == 0 || tok.Start < start {
			start = tok.Start
		}
		if i == 0 || tok.End > end {
			end = tok.End
		}
	}
	return start, end
}

// IsMarker reports whether the turn opens with a marker node.
func (t Turn) IsMarker() bool { return !t.IsEmpty() && t.First().IsMarker() }

// Clone returns a copy that shares no token storage with t.
func (t Turn) Clone() Turn {
	toks := make([]tokentree.Token, len(t.Tokens))
	copy(toks, t.Tokens)
	return Turn{ID: t.ID, Tokens: toks}
}

// Map is a turn-indexed view. Ids are dense and ordered by creation, which
// is temporal order of each turn's first token.
type Map struct {
	turns []Turn
}

// Len returns the number of turns.
func (m *Map) Len() int { return len(m.turns) }

// Get returns the turn with the given id.
func (m *Map) Get(id int) (Turn, bool) {
	if id < 1 || id > len(m.turns) {
		return Turn{}, false
	}
	return m.turns[id-1], true
}

// All yields turns in id order.
func (m *Map) All() iter.Seq[Turn] {
	return func(yield func(Turn) bool) {
		for _, t := range m.turns {
			if !yield(t) {
				return
			}
		}
	}
}

// Turns returns the turns in id order. The slice is shared with the map.
func (m *Map) Turns() []Turn { return m.turns }

// Tokens returns the concatenation of all turns' tokens in id order.
func (m *Map) Tokens() []tokentree.Token {
	var out []tokentree.Token
	for _, t := range m.turns {
		out = append(out, t.Tokens...)
	}
	return out
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	out := &Map{turns: make([]Turn, len(m.turns))}
	for i, t := range m.turns {
		out.turns[i] = t.Clone()
	}
	return out
}

func (m *Map) open(tok tokentree.Token) {
	m.turns = append(m.turns, Turn{ID: len(m.turns) + 1, Tokens: []tokentree.Token{tok}})
}

func (m *Map) appendAt(idx int, tok tokentree.Token) {
	m.turns[idx].Tokens = append(m.turns[idx].Tokens, tok)
}
