package detect

import (
	"github.com/kbukum/convokit/validation"
)

// Config holds the thresholds of every built-in detector.
type Config struct {
	Gap        GapConfig        `yaml:"gap" mapstructure:"gap"`
	Pause      PauseConfig      `yaml:"pause" mapstructure:"pause"`
	SpeechRate SpeechRateConfig `yaml:"speech_rate" mapstructure:"speech_rate"`
}

// GapConfig configures the gap detector.
type GapConfig struct {
	// LowerBound is the smallest floor-transfer offset, in seconds, that
	// counts as a gap. Inclusive.
	LowerBound float64 `yaml:"lower_bound" mapstructure:"lower_bound"`
}

// PauseConfig configures the pause bands. Bands are
// latch [LatchLower, LatchUpper), micropause [MicroLower, PauseLower),
// pause [PauseLower, PauseUpper] and large pause from LargeLower. Offsets
// between PauseUpper and LargeLower are left unmarked.
type PauseConfig struct {
	LatchLower float64 `yaml:"latch_lower" mapstructure:"latch_lower"`
	LatchUpper float64 `yaml:"latch_upper" mapstructure:"latch_upper"`
	MicroLower float64 `yaml:"micro_lower" mapstructure:"micro_lower"`
	PauseLower float64 `yaml:"pause_lower" mapstructure:"pause_lower"`
	PauseUpper float64 `yaml:"pause_upper" mapstructure:"pause_upper"`
	LargeLower float64 `yaml:"large_lower" mapstructure:"large_lower"`
}

// SpeechRateConfig configures the speech-rate detector.
type SpeechRateConfig struct {
	// MADMultiplier scales the median absolute deviation into the slow and
	// fast thresholds.
	MADMultiplier float64 `yaml:"mad_multiplier" mapstructure:"mad_multiplier"`
	// Fillers are first words that exclude a turn from classification.
	Fillers []string `yaml:"fillers" mapstructure:"fillers"`
}

const (
	DefaultGapLowerBound = 0.3

	DefaultLatchLower = 0.01
	DefaultLatchUpper = 0.09
	DefaultMicroLower = 0.1
	DefaultPauseLower = 0.2
	DefaultPauseUpper = 1.0
	DefaultLargeLower = 1.0

	DefaultMADMultiplier = 2.0
)

// DefaultFillers returns the hesitation tokens skipped by the speech-rate pass.
func DefaultFillers() []string {
	return []string{"%HESITATION", "uh", "um", "hmm", "mm"}
}

// DefaultConfig returns a Config with every default applied.
func DefaultConfig() Config {
	var c Config
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	c.Gap.ApplyDefaults()
	c.Pause.ApplyDefaults()
	c.SpeechRate.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Gap.Validate(); err != nil {
		return err
	}
	if err := c.Pause.Validate(); err != nil {
		return err
	}
	return c.SpeechRate.Validate()
}

// ApplyDefaults fills zero-valued fields.
func (c *GapConfig) ApplyDefaults() {
	if c.LowerBound == 0 {
		c.LowerBound = DefaultGapLowerBound
	}
}

// Validate checks the gap bound.
func (c *GapConfig) Validate() error {
	v := validation.New().
		Finite("detect.gap.lower_bound", c.LowerBound).
		Positive("detect.gap.lower_bound", c.LowerBound)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// ApplyDefaults fills zero-valued fields.
func (c *PauseConfig) ApplyDefaults() {
	if c.LatchLower == 0 {
		c.LatchLower = DefaultLatchLower
	}
	if c.LatchUpper == 0 {
		c.LatchUpper = DefaultLatchUpper
	}
	if c.MicroLower == 0 {
		c.MicroLower = DefaultMicroLower
	}
	if c.PauseLower == 0 {
		c.PauseLower = DefaultPauseLower
	}
	if c.PauseUpper == 0 {
		c.PauseUpper = DefaultPauseUpper
	}
	if c.LargeLower == 0 {
		c.LargeLower = DefaultLargeLower
	}
}

// Validate checks that the band edges are finite and ascending.
func (c *PauseConfig) Validate() error {
	v := validation.New().
		Finite("detect.pause.latch_lower", c.LatchLower).
		Finite("detect.pause.latch_upper", c.LatchUpper).
		Finite("detect.pause.micro_lower", c.MicroLower).
		Finite("detect.pause.pause_lower", c.PauseLower).
		Finite("detect.pause.pause_upper", c.PauseUpper).
		Finite("detect.pause.large_lower", c.LargeLower).
		Custom(c.LatchLower < c.LatchUpper, "detect.pause.latch_upper", "must be greater than latch_lower").
		Custom(c.LatchUpper <= c.MicroLower, "detect.pause.micro_lower", "must not be below latch_upper").
		Custom(c.MicroLower < c.PauseLower, "detect.pause.pause_lower", "must be greater than micro_lower").
		Custom(c.PauseLower < c.PauseUpper, "detect.pause.pause_upper", "must be greater than pause_lower").
		Custom(c.PauseUpper <= c.LargeLower, "detect.pause.large_lower", "must not be below pause_upper")
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// ApplyDefaults fills zero-valued fields.
func (c *SpeechRateConfig) ApplyDefaults() {
	if c.MADMultiplier == 0 {
		c.MADMultiplier = DefaultMADMultiplier
	}
	if c.Fillers == nil {
		c.Fillers = DefaultFillers()
	}
}

// Validate checks the multiplier.
func (c *SpeechRateConfig) Validate() error {
	v := validation.New().
		Finite("detect.speech_rate.mad_multiplier", c.MADMultiplier).
		Positive("detect.speech_rate.mad_multiplier", c.MADMultiplier)
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}
