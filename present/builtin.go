package present

import "github.com/kbukum/convokit/marker"

var builtins = []func() *Vocabulary{CHAT, TXT, CSV, XML, Raw}

// CHAT returns a fresh vocabulary following CHAT transcription conventions:
// timed pauses in parentheses, latching as ≈, and overlap brackets.
func CHAT() *Vocabulary {
	return &Vocabulary{
		Name: "CHAT",
		Entries: map[marker.Kind]Entry{
			marker.Gap:                {Template: "({info})", Attribute: AttributeTag},
			marker.Pause:              {Template: "({info})", GlyphTemplate: "{info}", Attribute: AttributeSpeaker},
			marker.OverlapFirstStart:  {Template: "⌈", Attribute: AttributeSpeaker},
			marker.OverlapFirstEnd:    {Template: "⌉", Attribute: AttributeSpeaker},
			marker.OverlapSecondStart: {Template: "⌊", Attribute: AttributeSpeaker},
			marker.OverlapSecondEnd:   {Template: "⌋", Attribute: AttributeSpeaker},
			marker.SlowSpeechStart:    {Template: marker.SlowSpeechGlyph, Attribute: AttributeSpeaker},
			marker.SlowSpeechEnd:      {Template: marker.SlowSpeechGlyph, Attribute: AttributeSpeaker},
			marker.FastSpeechStart:    {Template: marker.FastSpeechGlyph, Attribute: AttributeSpeaker},
			marker.FastSpeechEnd:      {Template: marker.FastSpeechGlyph, Attribute: AttributeSpeaker},
		},
	}
}

// TXT returns a fresh vocabulary rendering markers as bracketed plain-text
// annotations.
func TXT() *Vocabulary {
	return &Vocabulary{
		Name: "TXT",
		Entries: map[marker.Kind]Entry{
			marker.Gap:                {Template: "[gap {info}s]", Attribute: AttributeTag},
			marker.Pause:              {Template: "[pause {info}s]", GlyphTemplate: "[latch]", Attribute: AttributeSpeaker},
			marker.OverlapFirstStart:  {Template: "<{info}", Attribute: AttributeSpeaker},
			marker.OverlapFirstEnd:    {Template: "{info}>", Attribute: AttributeSpeaker},
			marker.OverlapSecondStart: {Template: "<{info}", Attribute: AttributeSpeaker},
			marker.OverlapSecondEnd:   {Template: "{info}>", Attribute: AttributeSpeaker},
			marker.SlowSpeechStart:    {Template: "[slow]", Attribute: AttributeSpeaker},
			marker.SlowSpeechEnd:      {Template: "[/slow]", Attribute: AttributeSpeaker},
			marker.FastSpeechStart:    {Template: "[fast]", Attribute: AttributeSpeaker},
			marker.FastSpeechEnd:      {Template: "[/fast]", Attribute: AttributeSpeaker},
		},
	}
}

// CSV returns a fresh vocabulary keeping every marker in a row of its own with a kind=value cell.
func CSV() *Vocabulary {
	return &Vocabulary{
		Name: "CSV",
		Entries: map[marker.Kind]Entry{
			marker.Gap:                {Template: "gap={info}"},
			marker.Pause:              {Template: "pause={info}", GlyphTemplate: "latch"},
			marker.OverlapFirstStart:  {Template: "overlap-first-start={info}"},
			marker.OverlapFirstEnd:    {Template: "overlap-first-end={info}"},
			marker.OverlapSecondStart: {Template: "overlap-second-start={info}"},
			marker.OverlapSecondEnd:   {Template: "overlap-second-end={info}"},
			marker.SlowSpeechStart:    {Template: "slow-start"},
			marker.SlowSpeechEnd:      {Template: "slow-end"},
			marker.FastSpeechStart:    {Template: "fast-start"},
			marker.FastSpeechEnd:      {Template: "fast-end"},
		},
	}
}

// XML returns a fresh vocabulary rendering markers as empty or paired elements.
func XML() *Vocabulary {
	return &Vocabulary{
		Name: "XML",
		Entries: map[marker.Kind]Entry{
			marker.Gap:                {Template: `<gap duration="{info}"/>`, Attribute: AttributeTag},
			marker.Pause:              {Template: `<pause duration="{info}"/>`, GlyphTemplate: `<latch/>`, Attribute: AttributeSpeaker},
			marker.OverlapFirstStart:  {Template: `<overlap id="{info}" role="first">`, Attribute: AttributeSpeaker},
			marker.OverlapFirstEnd:    {Template: `</overlap>`, Attribute: AttributeSpeaker},
			marker.OverlapSecondStart: {Template: `<overlap id="{info}" role="second">`, Attribute: AttributeSpeaker},
			marker.OverlapSecondEnd:   {Template: `</overlap>`, Attribute: AttributeSpeaker},
			marker.SlowSpeechStart:    {Template: `<slow>`, Attribute: AttributeSpeaker},
			marker.SlowSpeechEnd:      {Template: `</slow>`, Attribute: AttributeSpeaker},
			marker.FastSpeechStart:    {Template: `<fast>`, Attribute: AttributeSpeaker},
			marker.FastSpeechEnd:      {Template: `</fast>`, Attribute: AttributeSpeaker},
		},
	}
}

// Raw returns a vocabulary re-emitting markers in their encoded form for
// round-tripping.
func Raw() *Vocabulary {
	return &Vocabulary{Name: "Raw", Passthrough: true}
}
