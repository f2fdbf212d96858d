// SPDX-License-Identifier: EPL-2.0

package envelope

import (
	"fmt"

	"github.com/ik5/audmix/timeline"
	"github.com/ik5/audmix/utils"
)

const (
	// BreakLead is how long before its start a break effect begins to rise.
	BreakLead = 0.01
	// MinBreakPlay is the shortest time a break effect is heard.
	MinBreakPlay = 0.25
)

// Kind identifies a track of a mix.
type Kind int

const (
	KindIntro Kind = iota
	KindSpeech
	KindOutro
	KindBreak
)

func (k Kind) String() string {
	switch k {
	case KindIntro:
		return "intro"
	case KindSpeech:
		return "speech"
	case KindOutro:
		return "outro"
	case KindBreak:
		return "break"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// builder appends breakpoints, merging any that land on the same time.
type builder struct {
	points []Breakpoint
}

func start(v float64) *builder {
	return &builder{points: []Breakpoint{{Time: 0, Value: v, Curve: Step}}}
}

// to adds a breakpoint. A time at or before the last breakpoint collapses
// into it as an instant step to v; collapsing onto the same value keeps the
// last breakpoint untouched.
func (b *builder) to(t, v float64, c Curve) *builder {
	last := &b.points[len(b.points)-1]
	if t <= last.Time {
		if v == last.Value {
			return b
		}
		last.Value = v
		if len(b.points) > 1 {
			last.Curve = Step
		}
		return b
	}
	b.points = append(b.points, Breakpoint{Time: t, Value: v, Curve: c})
	return b
}

// hold keeps the current value until t. It never rewrites an existing
// breakpoint.
func (b *builder) hold(t float64) *builder {
	last := b.points[len(b.points)-1]
	if t <= last.Time {
		return b
	}
	return b.to(t, last.Value, Step)
}

func (b *builder) envelope() Envelope {
	return Envelope{Points: b.points}
}

// Intro holds the music volume until the fade starts, then ramps to silence
// by the end of the fade. Exponential fades stop at Floor.
func Intro(tl timeline.Timeline, cfg timeline.Config) Envelope {
	cfg = cfg.WithDefaults()
	vol := utils.Clamp(cfg.MusicVolume, 0, 1)

	curve, target := Linear, 0.0
	if cfg.FadeType == timeline.FadeExponential {
		curve, target = Exponential, Floor
	}

	return start(vol).
		hold(tl.FadeStart).
		to(tl.FadeEnd, target, curve).
		envelope()
}

// Speech is silent until the speech starts, then rises linearly to the
// speech volume over the configured rise time.
func Speech(tl timeline.Timeline, cfg timeline.Config) Envelope {
	cfg = cfg.WithDefaults()
	vol := utils.Clamp(cfg.SpeechVolume, 0, 1)

	return start(0).
		hold(tl.SpeechStart).
		to(tl.SpeechStart+cfg.SpeechRise, vol, Linear).
		envelope()
}

// Outro rises to the boosted music volume while speech ends, holds, then
// fades out. It is flat zero when the outro is disabled.
func Outro(tl timeline.Timeline, cfg timeline.Config) Envelope {
	cfg = cfg.WithDefaults()
	if !cfg.OutroEnabled {
		return Constant(0)
	}
	peak := min(1, utils.Clamp(cfg.MusicVolume, 0, 1)*cfg.OutroBoost)

	return start(0).
		hold(tl.OutroFadeInStart).
		to(tl.OutroFadeInEnd, peak, Linear).
		hold(tl.OutroHoldEnd).
		to(tl.OutroFadeOutEnd, 0, Linear).
		envelope()
}

// Break shapes one break effect starting at at (absolute seconds). The
// effect rises over BreakLead to the break gain and decays linearly to
// silence over the break duration, clamped to [MinBreakPlay, effectDuration].
func Break(at, breakDuration, effectDuration float64, cfg timeline.Config) Envelope {
	cfg = cfg.WithDefaults()
	at = utils.NonNegative(at)

	play := PlayDuration(breakDuration, effectDuration)
	gain := utils.Clamp(cfg.BreakGain, 0, MaxValue)

	return start(0).
		hold(utils.NonNegative(at-BreakLead)).
		to(at, gain, Linear).
		to(at+play, 0, Linear).
		envelope()
}

// PlayDuration is how long a break effect sounds for a break of the given
// length.
func PlayDuration(breakDuration, effectDuration float64) float64 {
	play := max(breakDuration, MinBreakPlay)
	if effectDuration > 0 {
		play = min(play, effectDuration)
	}
	return play
}

// Build returns the envelope of an intro, speech or outro track. Break
// effects need per-marker data and are built with Break.
func Build(kind Kind, tl timeline.Timeline, cfg timeline.Config) (Envelope, error) {
	switch kind {
	case KindIntro:
		return Intro(tl, cfg), nil
	case KindSpeech:
		return Speech(tl, cfg), nil
	case KindOutro:
		return Outro(tl, cfg), nil
	default:
		return Envelope{}, fmt.Errorf("%v: %w", kind, ErrUnknownKind)
	}
}
