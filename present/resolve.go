package present

import (
	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/tokentree"
	"github.com/kbukum/convokit/turn"
)

// Resolver returns the turn.Resolver substituting markers with the surface
// strings of vocab. Non-marker tokens pass through unchanged.
func Resolver(vocab *Vocabulary) turn.Resolver {
	return func(tok tokentree.Token) (tokentree.Token, error) {
		if !tok.IsMarker() || vocab.Passthrough {
			return tok, nil
		}
		m, err := tok.Marker()
		if err != nil {
			return tokentree.Token{}, err
		}
		entry, err := vocab.Lookup(m.Kind)
		if err != nil {
			return tokentree.Token{}, err
		}
		out := tok
		out.Text = entry.Render(m)
		if entry.Attribute == AttributeSpeaker && m.Speaker != marker.NoSpeaker {
			out.Speaker = m.Speaker
		}
		return out, nil
	}
}

// Resolve walks tree in order, substitutes every marker with its surface
// form in vocab and groups the substituted stream into turns with builder.
// A malformed marker or a kind missing from vocab fails the whole pass.
func Resolve(tree *tokentree.Tree, vocab *Vocabulary, builder *turn.Builder) (*turn.Map, error) {
	return builder.BuildResolved(tree.InOrder(), Resolver(vocab))
}
