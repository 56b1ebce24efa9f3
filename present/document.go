package present

import (
	"github.com/kbukum/convokit/conversation"
	"github.com/kbukum/convokit/tokentree"
	"github.com/kbukum/convokit/turn"
)

// Document is the serializable output of one annotation run.
type Document struct {
	ID     string             `json:"id"`
	Format string             `json:"format"`
	Turns  []DocumentTurn     `json:"turns"`
	Stats  conversation.Stats `json:"stats"`
}

// DocumentTurn is one resolved turn.
type DocumentTurn struct {
	ID      int               `json:"id"`
	Speaker string            `json:"speaker"`
	Start   float64           `json:"start"`
	End     float64           `json:"end"`
	Tokens  []tokentree.Token `json:"tokens"`
}

// Render resolves the model's tree with vocab and wraps the result together
// with the model's statistics.
func Render(m *conversation.Model, vocab *Vocabulary) (*Document, error) {
	tm, err := Resolve(m.Tree(false), vocab, m.Builder())
	if err != nil {
		return nil, err
	}
	return NewDocument(m.ID, vocab.Name, tm, m.Stats()), nil
}

// NewDocument builds a Document from a resolved turn map.
func NewDocument(id, format string, tm *turn.Map, stats conversation.Stats) *Document {
	doc := &Document{
		ID:     id,
		Format: format,
		Turns:  make([]DocumentTurn, 0, tm.Len()),
		Stats:  stats,
	}
	for t := range tm.All() {
		start, end := t.Span()
		doc.Turns = append(doc.Turns, DocumentTurn{
			ID:      t.ID,
			Speaker: t.Speaker(),
			Start:   start,
			End:     end,
			Tokens:  t.Clone().Tokens,
		})
	}
	return doc
}
