package detect

import (
	"testing"

	"github.com/kbukum/convokit/conversation"
	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/tokentree"
	"github.com/kbukum/convokit/turn"
)

func tok(start, end float64, speaker, text string) tokentree.Token {
	return tokentree.Token{Start: start, End: end, Speaker: speaker, Text: text}
}

func model(tokens ...tokentree.Token) *conversation.Model {
	return conversation.FromTokens(tokens, conversation.WithLogger(logger.Nop()))
}

func modelWithThreshold(threshold float64, tokens ...tokentree.Token) *conversation.Model {
	return conversation.FromTokens(tokens,
		conversation.WithLogger(logger.Nop()),
		conversation.WithTurnConfig(turn.Config{ContinuationThreshold: threshold}),
	)
}

type placed struct {
	start, end float64
	marker     marker.Marker
}

// markersOf returns every marker in the model in tree order and checks that
// each one parses back from its stored text.
func markersOf(t *testing.T, m *conversation.Model) []placed {
	t.Helper()
	var out []placed
	for _, tk := range m.Tree(false).InOrder() {
		if !tk.IsMarker() {
			continue
		}
		mk, err := tk.Marker()
		if err != nil {
			t.Fatalf("stored marker %q does not parse: %v", tk.Text, err)
		}
		if string(mk.Kind) != tk.Speaker {
			t.Fatalf("marker node label %q does not match kind %q", tk.Speaker, mk.Kind)
		}
		if mk.Encode() != tk.Text {
			t.Fatalf("marker does not round-trip: %q -> %q", tk.Text, mk.Encode())
		}
		out = append(out, placed{start: tk.Start, end: tk.End, marker: mk})
	}
	return out
}
