package conversation

import (
	"github.com/google/uuid"

	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/tokentree"
	"github.com/kbukum/convokit/transcript"
	"github.com/kbukum/convokit/turn"
	"github.com/kbukum/convokit/util"
)

// Model owns one token tree and the mappings derived from it.
type Model struct {
	// ID identifies the model in logs and traces.
	ID string

	tree     *tokentree.Tree
	builder  *turn.Builder
	turns    *turn.Map
	speakers *turn.SpeakerMap
	stats    Stats

	overlapSeq int
	log        *logger.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithTurnConfig sets the turn construction configuration.
func WithTurnConfig(cfg turn.Config) Option {
	return func(m *Model) { m.builder = turn.NewBuilder(cfg) }
}

// WithID overrides the generated model id.
func WithID(id string) Option {
	return func(m *Model) { m.ID = id }
}

// WithLogger sets the logger used by the model.
func WithLogger(l *logger.Logger) Option {
	return func(m *Model) { m.log = l }
}

// New creates a Model that takes ownership of tree.
func New(tree *tokentree.Tree, opts ...Option) *Model {
	m := &Model{
		ID:      uuid.NewString(),
		tree:    tree,
		builder: turn.NewBuilder(turn.Config{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.Get("conversation")
	}
	m.RebuildTurnMap()
	m.log.Debug("conversation model built", map[string]interface{}{
		"model_id": m.ID,
		"tokens":   m.tree.Len(),
		"turns":    m.turns.Len(),
	})
	return m
}

// FromTokens creates a Model from tokens in any order.
func FromTokens(tokens []tokentree.Token, opts ...Option) *Model {
	return New(tokentree.FromTokens(tokens), opts...)
}

// FromTurnMap creates a Model from an externally built turn mapping.
func FromTurnMap(tm *turn.Map, opts ...Option) *Model {
	return FromTokens(tm.Tokens(), opts...)
}

// FromTranscript validates t and creates a Model from its words. A single
// malformed word fails the whole build.
func FromTranscript(t *transcript.Transcript, opts ...Option) (*Model, error) {
	tokens, err := t.Tokens()
	if err != nil {
		return nil, err
	}
	return FromTokens(tokens, opts...), nil
}

// Tree returns the token tree, or a deep copy of it when copied is true.
func (m *Model) Tree(copied bool) *tokentree.Tree {
	if copied {
		return m.tree.Clone()
	}
	return m.tree
}

// TurnMap returns the turn-level mapping, or a deep copy of it.
func (m *Model) TurnMap(copied bool) *turn.Map {
	if copied {
		return m.turns.Clone()
	}
	return m.turns
}

// SpeakerMap returns the speaker-level mapping, or a deep copy of it.
func (m *Model) SpeakerMap(copied bool) *turn.SpeakerMap {
	if copied {
		return m.speakers.Clone()
	}
	return m.speakers
}

// Stats returns a copy of the conversation-level statistics.
func (m *Model) Stats() Stats { return m.stats.clone() }

// UpdateStats lets a detector write conversation-level statistics.
func (m *Model) UpdateStats(fn func(*Stats)) { fn(&m.stats) }

// Builder returns the turn builder configured for this model.
func (m *Model) Builder() *turn.Builder { return m.builder }

// InsertToken adds a token to the tree. Call RebuildTurnMap afterwards.
func (m *Model) InsertToken(tok tokentree.Token) { m.tree.InsertToken(tok) }

// InsertMarker stores mk as a marker node spanning [start, end].
// Call RebuildTurnMap afterwards.
func (m *Model) InsertMarker(start, end float64, mk marker.Marker) {
	m.tree.InsertToken(tokentree.FromMarker(start, end, mk))
}

// DeleteToken removes the token stored at start; missing keys are a no-op.
func (m *Model) DeleteToken(start float64) bool { return m.tree.Delete(start) }

// ReplaceText substitutes the text of the token stored at start.
func (m *Model) ReplaceText(start float64, text string) bool {
	return m.tree.ReplaceText(start, text)
}

// NextOverlapID returns the next overlap pairing id, starting at 1.
func (m *Model) NextOverlapID() int {
	m.overlapSeq++
	return m.overlapSeq
}

// RebuildTurnMap re-derives the turn and speaker mappings from the tree and
// refreshes the structural counters in Stats.
func (m *Model) RebuildTurnMap() {
	tokens := m.tree.InOrder()
	m.turns = m.builder.Build(tokens)
	m.speakers = turn.GroupBySpeaker(m.turns)

	counts := make(map[marker.Kind]int)
	for _, tok := range tokens {
		if tok.IsMarker() {
			counts[marker.Kind(tok.Speaker)]++
		}
	}
	speakers := util.Filter(m.speakers.Speakers(), func(label string) bool { return !marker.IsKind(label) })

	m.stats.TokenCount = len(tokens)
	m.stats.TurnCount = m.turns.Len()
	m.stats.SpeakerCount = len(speakers)
	m.stats.MarkerCounts = counts
}

// FromSources creates a Model from per-file word streams.
func FromSources(sources []transcript.Source, opts ...Option) (*Model, error) {
	return FromTranscript(&transcript.Transcript{Sources: sources}, opts...)
}
