package transcript

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/kbukum/convokit/errors"
	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/tokentree"
	"github.com/kbukum/convokit/validation"
)

// FromMap builds a transcript from a key-to-words mapping, ordered by key.
func FromMap(m map[string][]Word) *Transcript {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	t := &Transcript{Sources: make([]Source, 0, len(keys))}
	for _, k := range keys {
		t.Sources = append(t.Sources, Source{Key: k, Words: m[k]})
	}
	return t
}

// FromSegments flattens segments into words. Segments carrying word timings
// contribute those words, inheriting the segment speaker where a word has
// none; other segments become a single word spanning the segment.
func FromSegments(key string, segments []Segment) Source {
	src := Source{Key: key}
	for _, seg := range segments {
		if len(seg.Words) == 0 {
			text := strings.TrimSpace(seg.Text)
			if text == "" {
				continue
			}
			src.Words = append(src.Words, Word{Start: seg.Start, End: seg.End, Speaker: seg.Speaker, Text: text})
			continue
		}
		for _, w := range seg.Words {
			if w.Speaker == "" {
				w.Speaker = seg.Speaker
			}
			src.Words = append(src.Words, w)
		}
	}
	return src
}

// Decode reads a transcript in either of its JSON shapes:
//
//	{"sources": [{"key": "a.wav", "words": [...]}]}
//	{"a.wav": [...], "b.wav": [...]}
func Decode(r io.Reader) (*Transcript, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.InvalidInput("body", err.Error()).WithCause(err)
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, errors.InvalidFormat("transcript", "JSON object").WithCause(err)
	}
	if _, ok := probe["sources"]; ok {
		var t Transcript
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, errors.InvalidFormat("sources", "array of {key, words}").WithCause(err)
		}
		return &t, nil
	}

	var m map[string][]Word
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.InvalidFormat("transcript", "object of key to word arrays").WithCause(err)
	}
	return FromMap(m), nil
}

// Validate checks every word. The first malformed word fails the whole
// transcript: segmentation relies on a totally ordered token stream, so
// words are never dropped silently.
func (t *Transcript) Validate() error {
	for _, src := range t.Sources {
		if err := validation.Required("key", src.Key); err != nil {
			return err
		}
		for i, w := range src.Words {
			if err := validation.Validate(w); err != nil {
				appErr := errors.Wrap(err)
				return appErr.WithDetails(map[string]any{"source": src.Key, "index": i})
			}
			if marker.IsKind(w.Speaker) {
				return errors.InvalidInput("speaker", fmt.Sprintf("speaker label %q is reserved for markers", w.Speaker)).
					WithDetails(map[string]any{"source": src.Key, "index": i})
			}
		}
	}
	return nil
}

// Remap returns a copy of t whose speakers are relabeled with small
// integers. Sources are taken in order; each source's distinct speakers, in
// order of first appearance, become "0", "1", ... continuing from the running
// total of earlier sources, so labels never collide across merged files.
func Remap(t *Transcript) *Transcript {
	out := &Transcript{Sources: make([]Source, len(t.Sources))}
	offset := 0
	for i, src := range t.Sources {
		labels := make(map[string]string)
		words := make([]Word, len(src.Words))
		for j, w := range src.Words {
			label, ok := labels[w.Speaker]
			if !ok {
				label = strconv.Itoa(offset + len(labels))
				labels[w.Speaker] = label
			}
			w.Speaker = label
			words[j] = w
		}
		offset += len(labels)
		out.Sources[i] = Source{Key: src.Key, Words: words}
	}
	return out
}

// Tokens validates the transcript and returns its remapped words as tree
// tokens.
func (t *Transcript) Tokens() ([]tokentree.Token, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	var tokens []tokentree.Token
	for _, src := range Remap(t).Sources {
		for _, w := range src.Words {
			tokens = append(tokens, tokentree.Token{
				Start:   w.Start,
				End:     w.End,
				Speaker: w.Speaker,
				Text:    w.Text,
			})
		}
	}
	return tokens, nil
}

// AssignSpeakers labels each word with the diarization speaker whose segment
// overlaps it the most. A word overlapping no segment takes the speaker of
// the segment with the nearest midpoint. Words are returned as a new slice;
// with no segments they are returned unchanged.
func AssignSpeakers(words []Word, segments []SpeakerSegment) []Word {
	out := make([]Word, len(words))
	copy(out, words)
	if len(segments) == 0 {
		return out
	}
	for i, w := range out {
		best, bestOverlap := -1, 0.0
		for j, seg := range segments {
			ov := math.Min(w.End, seg.End) - math.Max(w.Start, seg.Start)
			if ov > bestOverlap {
				best, bestOverlap = j, ov
			}
		}
		if best < 0 {
			mid := (w.Start + w.End) / 2
			bestDist := math.Inf(1)
			for j, seg := range segments {
				if d := math.Abs(mid - (seg.Start+seg.End)/2); d < bestDist {
					best, bestDist = j, d
				}
			}
		}
		out[i].Speaker = segments[best].Speaker
	}
	return out
}
