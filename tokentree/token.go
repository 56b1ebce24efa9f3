package tokentree

import (
	"github.com/kbukum/convokit/marker"
)

// Token is one recognized word, or one marker node, with timing and speaker
// attribution.
type Token struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
}

// FromMarker builds the marker node for m spanning [start, end].
func FromMarker(start, end float64, m marker.Marker) Token {
	return Token{Start: start, End: end, Speaker: string(m.Kind), Text: m.Encode()}
}

// IsMarker reports whether the token is a marker node.
func (t Token) IsMarker() bool { return marker.IsKind(t.Speaker) }

// Marker decodes the marker carried by a marker node.
func (t Token) Marker() (marker.Marker, error) { return marker.Parse(t.Text) }

// Duration returns End - Start.
func (t Token) Duration() float64 { return t.End - t.Start }
