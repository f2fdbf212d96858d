// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds synthetic assets for tests across the module.
package audiotest

import (
	"math"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// Func builds an asset whose samples come from fn(frame, channel).
func Func(sampleRate, channels int, seconds float64, fn func(frame, channel int) float32) *audio.Asset {
	a := audio.NewAsset(sampleRate, channels, utils.SecondsToFrames(seconds, sampleRate))
	for c, ch := range a.Samples {
		for f := range ch {
			ch[f] = fn(f, c)
		}
	}
	return a
}

// Silence is an all-zero asset.
func Silence(sampleRate, channels int, seconds float64) *audio.Asset {
	return audio.NewAsset(sampleRate, channels, utils.SecondsToFrames(seconds, sampleRate))
}

// Constant holds value on every sample.
func Constant(sampleRate, channels int, seconds float64, value float32) *audio.Asset {
	return Func(sampleRate, channels, seconds, func(int, int) float32 { return value })
}

// Tone is a sine wave of the given frequency and peak amplitude.
func Tone(sampleRate, channels int, seconds, freq float64, amplitude float32) *audio.Asset {
	return Func(sampleRate, channels, seconds, func(f, _ int) float32 {
		return amplitude * float32(math.Sin(2*math.Pi*freq*float64(f)/float64(sampleRate)))
	})
}

// Concat joins assets end to end. All parts must share rate and channel count.
func Concat(parts ...*audio.Asset) *audio.Asset {
	if len(parts) == 0 {
		return nil
	}
	out := audio.NewAsset(parts[0].SampleRate, parts[0].Channels(), 0)
	for _, p := range parts {
		for c := range out.Samples {
			out.Samples[c] = append(out.Samples[c], p.Samples[c]...)
		}
	}
	return out
}

// Span describes one stretch of a synthetic speech track.
type Span struct {
	Seconds float64
	Silent  bool
}

// Speech alternates a 220 Hz tone (amplitude 0.5) with digital silence
// according to spans, producing a mono asset that a silence detector
// should split exactly at the span boundaries.
func Speech(sampleRate int, spans ...Span) *audio.Asset {
	parts := make([]*audio.Asset, 0, len(spans))
	for _, s := range spans {
		if s.Silent {
			parts = append(parts, Silence(sampleRate, 1, s.Seconds))
			continue
		}
		parts = append(parts, Tone(sampleRate, 1, s.Seconds, 220, 0.5))
	}
	return Concat(parts...)
}
