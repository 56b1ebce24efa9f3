package conversation

import (
	"maps"

	"github.com/kbukum/convokit/marker"
)

// Stats is the conversation-level statistics entry.
type Stats struct {
	// Speech-rate population statistics, in syllables per second.
	Median float64 `json:"median"`
	MAD    float64 `json:"mad"`
	Lower  float64 `json:"lower"`
	Upper  float64 `json:"upper"`
	// FastCount and SlowCount count turns classified as fast or slow speech.
	FastCount int `json:"fast_count"`
	SlowCount int `json:"slow_count"`

	TokenCount   int                 `json:"token_count"`
	TurnCount    int                 `json:"turn_count"`
	SpeakerCount int                 `json:"speaker_count"`
	MarkerCounts map[marker.Kind]int `json:"marker_counts,omitempty"`
}

func (s Stats) clone() Stats {
	s.MarkerCounts = maps.Clone(s.MarkerCounts)
	return s
}
