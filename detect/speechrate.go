package detect

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/kbukum/convokit/conversation"
	"github.com/kbukum/convokit/logger"
	"github.com/kbukum/convokit/marker"
	"github.com/kbukum/convokit/turn"
	"github.com/kbukum/convokit/util"
)

// SpeechRate brackets turns spoken markedly slower or faster than the
// conversation's median rate.
type SpeechRate struct {
	cfg       SpeechRateConfig
	estimator SyllableEstimator
	log       *logger.Logger
}

// NewSpeechRate creates a speech-rate detector. A nil estimator selects
// EnglishEstimator.
func NewSpeechRate(cfg SpeechRateConfig, estimator SyllableEstimator) *SpeechRate {
	cfg.ApplyDefaults()
	if estimator == nil {
		estimator = EnglishEstimator{}
	}
	return &SpeechRate{cfg: cfg, estimator: estimator, log: logger.Get("detect.speechrate")}
}

// Name implements Detector.
func (d *SpeechRate) Name() string { return "speechrate" }

// TurnRate is the rate of one speaker turn in syllables per second.
type TurnRate struct {
	Turn turn.Turn
	Rate float64
}

// Rates computes the rate of every speaker turn with positive duration.
func (d *SpeechRate) Rates(tm *turn.Map) ([]TurnRate, error) {
	var out []TurnRate
	for t := range tm.All() {
		if t.IsEmpty() || t.IsMarker() {
			continue
		}
		dur := math.Abs(t.Last().End - t.First().Start)
		if dur <= 0 {
			continue
		}
		syllables := 0
		for _, tok := range t.Tokens {
			n, err := d.estimator.Syllables(tok.Text)
			if err != nil {
				return nil, fmt.Errorf("estimate syllables of %q: %w", tok.Text, err)
			}
			syllables += n
		}
		out = append(out, TurnRate{Turn: t, Rate: util.Round(float64(syllables)/dur, 2)})
	}
	return out, nil
}

// Apply classifies every speaker turn and writes the rate statistics to the
// model. Estimator errors abort the pass before any marker is inserted.
func (d *SpeechRate) Apply(_ context.Context, m *conversation.Model) error {
	rates, err := d.Rates(m.TurnMap(true))
	if err != nil {
		return err
	}
	if len(rates) == 0 {
		m.UpdateStats(func(s *conversation.Stats) {
			s.Median, s.MAD, s.Lower, s.Upper = 0, 0, 0, 0
			s.FastCount, s.SlowCount = 0, 0
		})
		return nil
	}

	values := make([]float64, len(rates))
	for i, r := range rates {
		values[i] = r.Rate
	}
	median := util.Median(values)
	mad := util.Round(util.MedianAbsDeviation(values), 2)
	lower := util.Round(median-d.cfg.MADMultiplier*mad, 2)
	upper := util.Round(median+d.cfg.MADMultiplier*mad, 2)

	var (
		pending    batch
		slow, fast int
	)
	for _, r := range rates {
		first, last := r.Turn.First(), r.Turn.Last()
		if d.isFiller(first.Text) {
			continue
		}
		speaker := r.Turn.Speaker()
		switch {
		case r.Rate <= lower && r.Rate < median:
			slow++
			if len(r.Turn.Tokens) == 1 && hasVowel(first.Text) {
				continue
			}
			pending.add(first.Start, first.Start, marker.New(marker.SlowSpeechStart, marker.SlowSpeechGlyph, speaker))
			pending.add(last.End, last.End, marker.New(marker.SlowSpeechEnd, marker.SlowSpeechGlyph, speaker))
		case r.Rate >= upper && r.Rate > median:
			fast++
			pending.add(first.Start, first.Start, marker.New(marker.FastSpeechStart, marker.FastSpeechGlyph, speaker))
			pending.add(last.End, last.End, marker.New(marker.FastSpeechEnd, marker.FastSpeechGlyph, speaker))
		}
	}

	pending.commit(m, d.log, d.Name())
	m.UpdateStats(func(s *conversation.Stats) {
		s.Median, s.MAD, s.Lower, s.Upper = median, mad, lower, upper
		s.SlowCount, s.FastCount = slow, fast
	})
	d.log.Debug("speech rate statistics", logger.Fields(
		logger.FieldModelID, m.ID,
		"median", median, "mad", mad, "slow", slow, "fast", fast,
	))
	return nil
}

func (d *SpeechRate) isFiller(word string) bool {
	for _, f := range d.cfg.Fillers {
		if strings.EqualFold(f, word) {
			return true
		}
	}
	return false
}
