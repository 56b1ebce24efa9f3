package marker

// Kind is the type tag of a marker. Its string value doubles as the speaker
// label of the marker node in the token tree.
type Kind string

const (
	Gap                Kind = "gaps"
	OverlapFirstStart  Kind = "overlap-firstStart"
	OverlapFirstEnd    Kind = "overlap-firstEnd"
	OverlapSecondStart Kind = "overlap-secondStart"
	OverlapSecondEnd   Kind = "overlap-secondEnd"
	Pause              Kind = "pauses"
	SlowSpeechStart    Kind = "slowspeech_start"
	SlowSpeechEnd      Kind = "slowspeech_end"
	FastSpeechStart    Kind = "fastspeech_start"
	FastSpeechEnd      Kind = "fastspeech_end"
)

// NoSpeaker is the markerSpeaker value for events not attributed to anyone.
const NoSpeaker = "NONE"

// Payload glyphs carried in markerInfo.
const (
	LatchGlyph      = "≈"
	SlowSpeechGlyph = "∇"
	FastSpeechGlyph = "∆"
)

var kinds = []Kind{
	Gap,
	OverlapFirstStart, OverlapFirstEnd, OverlapSecondStart, OverlapSecondEnd,
	Pause,
	SlowSpeechStart, SlowSpeechEnd,
	FastSpeechStart, FastSpeechEnd,
}

var kindSet = func() map[Kind]struct{} {
	m := make(map[Kind]struct{}, len(kinds))
	for _, k := range kinds {
		m[k] = struct{}{}
	}
	return m
}()

// Kinds returns every marker kind in a stable order.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// IsKind reports whether label is one of the marker kinds.
func IsKind(label string) bool {
	_, ok := kindSet[Kind(label)]
	return ok
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return IsKind(string(k)) }

// IsOverlap reports whether k is one of the four overlap boundary roles.
func (k Kind) IsOverlap() bool {
	switch k {
	case OverlapFirstStart, OverlapFirstEnd, OverlapSecondStart, OverlapSecondEnd:
		return true
	}
	return false
}

// String returns the kind tag.
func (k Kind) String() string { return string(k) }
