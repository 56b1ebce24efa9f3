package turn

import (
	"github.com/kbukum/convokit/tokentree"
)

// Resolver transforms a token before it is grouped. The presentation pass
// uses it to substitute marker text and reattribute markers to speakers.
type Resolver func(tokentree.Token) (tokentree.Token, error)

// Builder groups an ordered token stream into turns.
type Builder struct {
	threshold float64
}

// NewBuilder creates a Builder. Zero-valued fields of cfg take their defaults.
func NewBuilder(cfg Config) *Builder {
	cfg.ApplyDefaults()
	return &Builder{threshold: cfg.ContinuationThreshold}
}

// Build groups tokens, which must be in tree order, into a turn map.
func (b *Builder) Build(tokens []tokentree.Token) *Map {
	m := &Map{}
	for _, tok := range tokens {
		b.place(m, tok)
	}
	return m
}

// BuildResolved runs every token through resolve before grouping it. The
// first resolver error aborts the build.
func (b *Builder) BuildResolved(tokens []tokentree.Token, resolve Resolver) (*Map, error) {
	if resolve == nil {
		return b.Build(tokens), nil
	}
	m := &Map{}
	for _, tok := range tokens {
		resolved, err := resolve(tok)
		if err != nil {
			return nil, err
		}
		b.place(m, resolved)
	}
	return m, nil
}

// place applies the continuation rules in order: the current turn, the
// nearest non-marker turn, then the nearest turn ending with the same
// speaker. The current turn is always the most recently opened one.
func (b *Builder) place(m *Map, tok tokentree.Token) {
	if m.Len() == 0 {
		m.open(tok)
		return
	}

	cur := m.Len() - 1
	if b.continues(m.turns[cur], tok) {
		m.appendAt(cur, tok)
		return
	}

	idx := cur
	for idx >= 0 && m.turns[idx].Last().IsMarker() {
		idx--
	}
	if idx >= 0 && b.continues(m.turns[idx], tok) {
		m.appendAt(idx, tok)
		return
	}

	for idx = cur; idx >= 0; idx-- {
		if m.turns[idx].Last().Speaker == tok.Speaker {
			break
		}
	}
	if idx >= 0 && b.continues(m.turns[idx], tok) {
		m.appendAt(idx, tok)
		return
	}

	m.open(tok)
}

func (b *Builder) continues(t Turn, tok tokentree.Token) bool {
	last := t.Last()
	return last.Speaker == tok.Speaker && tok.Start-last.End < b.threshold
}
