package turn

import "fmt"

// DefaultContinuationThreshold is the largest floor-transfer offset, in
// seconds, at which a token still continues a turn.
const DefaultContinuationThreshold = 0.1

// Config configures turn construction.
type Config struct {
	// ContinuationThreshold: a token continues a turn when
	// token.Start - turn.last.End is strictly below this value.
	ContinuationThreshold float64 `yaml:"continuation_threshold" mapstructure:"continuation_threshold"`
}

// ApplyDefaults applies default values to turn configuration.
func (c *Config) ApplyDefaults() {
	if c.ContinuationThreshold == 0 {
		c.ContinuationThreshold = DefaultContinuationThreshold
	}
}

// Validate validates turn configuration.
func (c *Config) Validate() error {
	if c.ContinuationThreshold <= 0 {
		return fmt.Errorf("turn.continuation_threshold must be positive (got: %v)", c.ContinuationThreshold)
	}
	return nil
}
