package marker

import (
	"strings"

	"github.com/kbukum/convokit/errors"
)

const (
	keyType    = "markerType"
	keyInfo    = "markerInfo"
	keySpeaker = "markerSpeaker"

	keyValueSep = "="
	fieldSep    = ":"
	open        = "("
	closing     = ")"
)

var (
	typePrefix    = keyType + keyValueSep
	infoAnchor    = fieldSep + keyInfo + keyValueSep
	speakerAnchor = fieldSep + keySpeaker + keyValueSep
)

// Marker is a detected discourse event.
type Marker struct {
	Kind    Kind
	Info    string
	Speaker string
}

// New builds a Marker.
func New(kind Kind, info, speaker string) Marker {
	return Marker{Kind: kind, Info: info, Speaker: speaker}
}

// Encode serializes m into its tree-storage text form.
func (m Marker) Encode() string {
	var b strings.Builder
	b.Grow(len(typePrefix) + len(infoAnchor) + len(speakerAnchor) + len(m.Kind) + len(m.Info) + len(m.Speaker) + 2)
	b.WriteString(open)
	b.WriteString(typePrefix)
	b.WriteString(string(m.Kind))
	b.WriteString(infoAnchor)
	b.WriteString(m.Info)
	b.WriteString(speakerAnchor)
	b.WriteString(m.Speaker)
	b.WriteString(closing)
	return b.String()
}

// String implements fmt.Stringer with the encoded form.
func (m Marker) String() string { return m.Encode() }

// Parse decodes marker text produced by Encode. The info field is located
// between the :markerInfo= and the last :markerSpeaker= anchors, so payloads
// holding ':' or '=' survive the round trip.
func Parse(text string) (Marker, error) {
	if !strings.HasPrefix(text, open) || !strings.HasSuffix(text, closing) || len(text) < 2 {
		return Marker{}, errors.MalformedMarker(text, "not wrapped in parentheses")
	}
	inner := text[len(open) : len(text)-len(closing)]
	if !strings.HasPrefix(inner, typePrefix) {
		return Marker{}, errors.MalformedMarker(text, "missing "+keyType)
	}
	infoAt := strings.Index(inner, infoAnchor)
	if infoAt < 0 {
		return Marker{}, errors.MalformedMarker(text, "missing "+keyInfo)
	}
	speakerAt := strings.LastIndex(inner, speakerAnchor)
	if speakerAt < infoAt+len(infoAnchor) {
		return Marker{}, errors.MalformedMarker(text, "missing "+keySpeaker)
	}

	kind := Kind(inner[len(typePrefix):infoAt])
	if !kind.Valid() {
		return Marker{}, errors.MalformedMarker(text, "unknown "+keyType+" "+string(kind))
	}
	return Marker{
		Kind:    kind,
		Info:    inner[infoAt+len(infoAnchor) : speakerAt],
		Speaker: inner[speakerAt+len(speakerAnchor):],
	}, nil
}

// IsEncoded reports whether text parses as a marker.
func IsEncoded(text string) bool {
	_, err := Parse(text)
	return err == nil
}
