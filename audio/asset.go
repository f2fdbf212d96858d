// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Asset is a fully decoded PCM buffer held in planar form: one slice of
// samples per channel, all of equal length.
//
// Assets are treated as immutable once built. Code that needs to change
// samples works on a Clone.
type Asset struct {
	Samples    [][]float32
	SampleRate int
}

// NewAsset allocates a silent asset with the given shape.
func NewAsset(sampleRate, channels, frames int) *Asset {
	samples := make([][]float32, channels)
	for c := range samples {
		samples[c] = make([]float32, frames)
	}
	return &Asset{Samples: samples, SampleRate: sampleRate}
}

func (a *Asset) Channels() int { return len(a.Samples) }

// Frames returns the number of samples per channel.
func (a *Asset) Frames() int {
	if len(a.Samples) == 0 {
		return 0
	}
	return len(a.Samples[0])
}

// Duration in seconds.
func (a *Asset) Duration() float64 {
	if a == nil || a.SampleRate <= 0 {
		return 0
	}
	return float64(a.Frames()) / float64(a.SampleRate)
}

// Validate reports whether the asset can be rendered.
func (a *Asset) Validate() error {
	if a == nil || len(a.Samples) == 0 {
		return ErrEmptyAsset
	}
	if a.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	n := len(a.Samples[0])
	for c := 1; c < len(a.Samples); c++ {
		if len(a.Samples[c]) != n {
			return fmt.Errorf("channel %d has %d frames, want %d: %w", c, len(a.Samples[c]), n, ErrRaggedChannels)
		}
	}
	return nil
}

// Clone returns a deep copy that shares no sample memory with a.
func (a *Asset) Clone() *Asset {
	if a == nil {
		return nil
	}
	samples := make([][]float32, len(a.Samples))
	for c, ch := range a.Samples {
		samples[c] = append([]float32(nil), ch...)
	}
	return &Asset{Samples: samples, SampleRate: a.SampleRate}
}

// Interleaved returns the samples as a single frame-major slice.
func (a *Asset) Interleaved() []float32 {
	channels := a.Channels()
	frames := a.Frames()
	out := make([]float32, frames*channels)
	for c, ch := range a.Samples {
		for f, v := range ch {
			out[f*channels+c] = v
		}
	}
	return out
}

// Reader exposes the asset as a Source so it can feed the streaming
// processors in this package. The asset itself is not modified.
func (a *Asset) Reader() Source {
	return &assetSource{asset: a}
}

type assetSource struct {
	asset *Asset
	pos   int // next frame
}

func (s *assetSource) SampleRate() int { return s.asset.SampleRate }
func (s *assetSource) Channels() int   { return s.asset.Channels() }
func (s *assetSource) BufSize() int    { return 4096 }
func (s *assetSource) Close() error    { return nil }

func (s *assetSource) ReadSamples(dst []float32) (int, error) {
	channels := s.asset.Channels()
	if channels == 0 {
		return 0, io.EOF
	}
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := s.asset.Frames() - s.pos
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = s.asset.Samples[c][s.pos+f]
		}
	}
	s.pos += frames

	if s.pos >= s.asset.Frames() {
		return frames * channels, io.EOF
	}
	return frames * channels, nil
}
