// SPDX-License-Identifier: EPL-2.0

package timeline

import (
	"fmt"

	"github.com/ik5/audmix/utils"
)

// MinSpeech is the shortest speech stage scheduled, in seconds.
const MinSpeech = 0.1

// Timeline holds the absolute stage boundaries of a mix, in seconds from the
// start of the render.
type Timeline struct {
	IntroStart       float64
	FadeStart        float64
	FadeEnd          float64
	SpeechStart      float64
	SpeechEnd        float64
	OutroFadeInStart float64
	OutroFadeInEnd   float64
	OutroHoldEnd     float64
	OutroFadeOutEnd  float64
	TotalDuration    float64
}

// Build lays out a mix around speech of the given length. Negative inputs
// are treated as zero and no stamp is ever negative.
func Build(cfg Config, speechDuration float64) Timeline {
	cfg = cfg.WithDefaults()

	intro := utils.NonNegative(cfg.IntroDuration)
	fade := utils.NonNegative(cfg.IntroFadeDuration)
	speech := utils.NonNegative(speechDuration)

	tl := Timeline{
		FadeStart:   intro,
		FadeEnd:     intro + fade,
		SpeechStart: intro + fade/2,
	}
	tl.SpeechEnd = tl.SpeechStart + max(speech, MinSpeech)

	var outro float64
	if cfg.OutroEnabled {
		outro = utils.NonNegative(cfg.OutroDuration)
		fadeIn := utils.NonNegative(cfg.OutroFadeInDuration)
		fadeOut := utils.NonNegative(cfg.OutroFadeOutDuration)

		tl.OutroFadeInStart = utils.NonNegative(tl.SpeechEnd - fadeIn)
		tl.OutroFadeInEnd = tl.SpeechEnd
		tl.OutroFadeOutEnd = tl.SpeechEnd + outro
		tl.OutroHoldEnd = utils.Clamp(tl.SpeechEnd+outro-fadeOut, tl.SpeechEnd, tl.OutroFadeOutEnd)
	} else {
		tl.OutroFadeInStart = tl.SpeechEnd
		tl.OutroFadeInEnd = tl.SpeechEnd
		tl.OutroHoldEnd = tl.SpeechEnd
		tl.OutroFadeOutEnd = tl.SpeechEnd
	}

	tl.TotalDuration = intro + fade + speech + outro + utils.NonNegative(cfg.Pad)
	tl.TotalDuration = max(tl.TotalDuration, tl.OutroFadeOutEnd, tl.FadeEnd)

	return tl
}

// SpeechDuration is the scheduled length of the speech stage.
func (t Timeline) SpeechDuration() float64 { return t.SpeechEnd - t.SpeechStart }

// Validate checks that every stamp is non-negative and that stages are in
// order.
func (t Timeline) Validate() error {
	order := []struct {
		name string
		v    float64
	}{
		{"intro start", t.IntroStart},
		{"fade start", t.FadeStart},
		{"speech start", t.SpeechStart},
		{"speech end", t.SpeechEnd},
		{"total", t.TotalDuration},
	}
	outro := []float64{t.OutroFadeInStart, t.OutroFadeInEnd, t.OutroHoldEnd, t.OutroFadeOutEnd, t.TotalDuration}

	for i, s := range order {
		if s.v < 0 {
			return fmt.Errorf("%s is negative: %w", s.name, ErrInvalidTimeline)
		}
		if i > 0 && s.v < order[i-1].v {
			return fmt.Errorf("%s before %s: %w", s.name, order[i-1].name, ErrInvalidTimeline)
		}
	}
	if t.FadeEnd < t.FadeStart || t.FadeEnd > t.TotalDuration {
		return fmt.Errorf("intro fade out of range: %w", ErrInvalidTimeline)
	}
	for i := range outro {
		if outro[i] < 0 || (i > 0 && outro[i] < outro[i-1]) {
			return fmt.Errorf("outro stages out of order: %w", ErrInvalidTimeline)
		}
	}
	return nil
}

// Stage is a named interval of the timeline.
type Stage struct {
	Name  string
	Start float64
	End   float64
}

// Stages lists the timeline as intervals in schedule order, for display.
func (t Timeline) Stages() []Stage {
	return []Stage{
		{"intro", t.IntroStart, t.FadeStart},
		{"intro fade", t.FadeStart, t.FadeEnd},
		{"speech", t.SpeechStart, t.SpeechEnd},
		{"outro fade in", t.OutroFadeInStart, t.OutroFadeInEnd},
		{"outro hold", t.OutroFadeInEnd, t.OutroHoldEnd},
		{"outro fade out", t.OutroHoldEnd, t.OutroFadeOutEnd},
		{"end", t.TotalDuration, t.TotalDuration},
	}
}
