// SPDX-License-Identifier: EPL-2.0

package silence

// Config tunes the detector. Durations are in seconds.
type Config struct {
	Window      float64 `yaml:"window"`
	Step        float64 `yaml:"step"`
	Threshold   float64 `yaml:"threshold"`
	MinDuration float64 `yaml:"min_duration"`
	MergeGap    float64 `yaml:"merge_gap"`
}

// DefaultConfig: 50 ms windows every 10 ms, silent below 0.015 (about
// -36 dBFS), segments of at least 0.4 s, merged across gaps under 0.15 s.
func DefaultConfig() Config {
	return Config{
		Window:      0.05,
		Step:        0.01,
		Threshold:   0.015,
		MinDuration: 0.4,
		MergeGap:    0.15,
	}
}

// WithDefaults fills non-positive fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Window <= 0 {
		c.Window = d.Window
	}
	if c.Step <= 0 {
		c.Step = d.Step
	}
	if c.Threshold <= 0 {
		c.Threshold = d.Threshold
	}
	if c.MinDuration < 0 {
		c.MinDuration = d.MinDuration
	}
	if c.MergeGap < 0 {
		c.MergeGap = d.MergeGap
	}
	return c
}
