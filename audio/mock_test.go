// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
)

// genSource produces frames from a generator function. It mirrors
// internal/audiotest but lives here because audiotest imports this package.
type genSource struct {
	rate     int
	channels int
	frames   int
	pos      int
	gen      func(frame, channel int) float32
	failAt   int // frame at which ReadSamples fails, or -1
}

var errBoom = errors.New("boom")

func newGenSource(rate, channels, frames int, gen func(frame, channel int) float32) *genSource {
	return &genSource{rate: rate, channels: channels, frames: frames, gen: gen, failAt: -1}
}

func constantSource(rate, channels, frames int, v float32) *genSource {
	return newGenSource(rate, channels, frames, func(int, int) float32 { return v })
}

func sineSource(rate, channels, frames int, freq float64) *genSource {
	return newGenSource(rate, channels, frames, func(f, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(f) / float64(rate)))
	})
}

func (g *genSource) SampleRate() int { return g.rate }
func (g *genSource) Channels() int   { return g.channels }
func (g *genSource) BufSize() int    { return 4096 }
func (g *genSource) Close() error    { return nil }

func (g *genSource) ReadSamples(dst []float32) (int, error) {
	if g.pos >= g.frames {
		return 0, io.EOF
	}
	if g.failAt >= 0 && g.pos >= g.failAt {
		return 0, errBoom
	}

	n := min(len(dst)/g.channels, g.frames-g.pos)
	for f := range n {
		for c := range g.channels {
			dst[f*g.channels+c] = g.gen(g.pos+f, c)
		}
	}
	g.pos += n

	if g.pos >= g.frames {
		return n * g.channels, io.EOF
	}
	return n * g.channels, nil
}

// rampAsset builds an asset whose samples count up per frame, offset per
// channel, which makes channel mix-ups easy to spot.
func rampAsset(rate, channels, frames int) *Asset {
	a := NewAsset(rate, channels, frames)
	for c := range channels {
		for f := range frames {
			a.Samples[c][f] = float32(f)/float32(frames) + float32(c)*0.001
		}
	}
	return a
}
