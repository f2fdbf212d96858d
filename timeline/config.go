// SPDX-License-Identifier: EPL-2.0

package timeline

import "fmt"

// FadeType selects the curve of the intro fade-out.
type FadeType string

const (
	FadeLinear      FadeType = "linear"
	FadeExponential FadeType = "exponential"
)

// Config describes one mix. Durations are seconds, volumes are linear gains.
type Config struct {
	Enabled           bool     `yaml:"enabled"`
	IntroDuration     float64  `yaml:"intro_duration"`
	IntroFadeDuration float64  `yaml:"intro_fade_duration"`
	FadeType          FadeType `yaml:"fade_type"`
	MusicVolume       float64  `yaml:"music_volume"`
	SpeechVolume      float64  `yaml:"speech_volume"`

	OutroEnabled         bool    `yaml:"outro_enabled"`
	OutroFadeInDuration  float64 `yaml:"outro_fade_in_duration"`
	OutroDuration        float64 `yaml:"outro_duration"`
	OutroFadeOutDuration float64 `yaml:"outro_fade_out_duration"`

	BreakSoundEnabled bool `yaml:"break_sound_enabled"`

	// OutroBoost multiplies MusicVolume for the outro peak, capped at 1.
	OutroBoost float64 `yaml:"outro_boost"`
	// BreakGain is the peak gain of a break effect.
	BreakGain float64 `yaml:"break_gain"`
	// SpeechRise is the length of the speech fade-in.
	SpeechRise float64 `yaml:"speech_rise"`
	// Pad is silence appended after the last stage.
	Pad float64 `yaml:"pad"`
}

func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		IntroDuration:        5,
		IntroFadeDuration:    3,
		FadeType:             FadeLinear,
		MusicVolume:          0.3,
		SpeechVolume:         1,
		OutroEnabled:         true,
		OutroFadeInDuration:  2,
		OutroDuration:        6,
		OutroFadeOutDuration: 3,
		BreakSoundEnabled:    true,
		OutroBoost:           1.2,
		BreakGain:            0.6,
		SpeechRise:           1,
		Pad:                  0.5,
	}
}

// WithDefaults fills an empty fade type, a non-positive speech rise and
// negative gains or pad. Zero gains are kept: a zero BreakGain silences
// break effects and a zero OutroBoost silences the outro. Stage durations
// and volumes are left as given.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.FadeType == "" {
		c.FadeType = d.FadeType
	}
	if c.OutroBoost < 0 {
		c.OutroBoost = d.OutroBoost
	}
	if c.BreakGain < 0 {
		c.BreakGain = d.BreakGain
	}
	if c.SpeechRise <= 0 {
		c.SpeechRise = d.SpeechRise
	}
	if c.Pad < 0 {
		c.Pad = d.Pad
	}
	return c
}

// Validate rejects values no timeline can be built from. Negative stage
// durations are not errors; Build clamps them.
func (c Config) Validate() error {
	switch c.FadeType {
	case FadeLinear, FadeExponential, "":
	default:
		return fmt.Errorf("fade type %q: %w", c.FadeType, ErrInvalidConfig)
	}

	for name, v := range map[string]float64{
		"music volume":  c.MusicVolume,
		"speech volume": c.SpeechVolume,
	} {
		if v < 0 || v > 1 || v != v {
			return fmt.Errorf("%s %v outside [0, 1]: %w", name, v, ErrInvalidConfig)
		}
	}

	if c.OutroBoost < 0 || c.BreakGain < 0 || c.BreakGain > 1.5 {
		return fmt.Errorf("tuning gains out of range: %w", ErrInvalidConfig)
	}
	return nil
}
