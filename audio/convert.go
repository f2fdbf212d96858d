// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

const maxIdleReads = 8

// ReadAll drains src into a planar Asset. A trailing partial frame is
// dropped. src is not closed.
func ReadAll(src Source) (*Asset, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, ErrEmptyAsset
	}
	if src.SampleRate() <= 0 {
		return nil, ErrInvalidSampleRate
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels
	buf := make([]float32, bufSize)

	asset := &Asset{Samples: make([][]float32, channels), SampleRate: src.SampleRate()}
	pending := make([]float32, 0, channels)
	idle := 0

	for {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			pending = append(pending, v)
			if len(pending) == channels {
				for c := range channels {
					asset.Samples[c] = append(asset.Samples[c], pending[c])
				}
				pending = pending[:0]
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}

		// A source that keeps returning (0, nil) is treated as finished.
		if n == 0 {
			idle++
			if idle >= maxIdleReads {
				break
			}
			continue
		}
		idle = 0
	}

	return asset, nil
}

// Resample converts a to targetRate using the cubic Resampler. When the
// rates already match a Clone is returned.
func Resample(a *Asset, targetRate int) (*Asset, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if targetRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if a.SampleRate == targetRate {
		return a.Clone(), nil
	}
	if a.Frames() == 0 {
		return NewAsset(targetRate, a.Channels(), 0), nil
	}

	out, err := ReadAll(NewResampler(a.Reader(), targetRate))
	if err != nil {
		return nil, fmt.Errorf("resampling %d Hz -> %d Hz: %w", a.SampleRate, targetRate, err)
	}
	return out, nil
}

// Downmix averages all channels of a into a single mono slice.
func Downmix(a *Asset) ([]float32, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	mono := NewMonoMixer(a.Reader())
	out := make([]float32, 0, a.Frames())
	buf := make([]float32, 4096)
	for {
		n, err := mono.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF || (n == 0 && err == nil) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}
	return out, nil
}
