// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/utils"
)

// Resampler streams src at a new sample rate using Catmull-Rom (cubic)
// interpolation on interleaved frames. Channel count is preserved. A
// one-pole low-pass runs on the input when downsampling.
//
// The first output frame equals the first input frame, and output stops
// once the read position passes the last input frame, so a source of N
// frames yields roughly N*dstRate/srcRate frames.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// window[1] is the frame at the integer read position; window[0] is the
	// one before it and window[2], window[3] the two after. Missing edge
	// frames are filled by repeating the nearest real one.
	window [4][]float32
	real   [4]bool
	primed bool

	pos    float64 // fractional offset from window[1], in [0, 1)
	srcBuf []float32
	eof    bool

	useFilter   bool
	filterAlpha float32
	filterState []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:         src,
		dstRate:     dstRate,
		ratio:       ratio,
		channels:    channels,
		srcBuf:      make([]float32, channels),
		useFilter:   ratio > 1.0,
		filterAlpha: 0.5,
		filterState: make([]float32, channels),
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame from the source into dst. It reports false once
// the source is exhausted.
func (r *Resampler) readFrame(dst []float32, first bool) (bool, error) {
	for !r.eof {
		n, err := r.src.ReadSamples(r.srcBuf)
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
		if n < r.channels {
			continue
		}

		copy(dst, r.srcBuf)
		if r.useFilter {
			if first {
				copy(r.filterState, dst)
			}
			for c := range r.channels {
				dst[c] = r.filterAlpha*dst[c] + (1-r.filterAlpha)*r.filterState[c]
				r.filterState[c] = dst[c]
			}
		}
		return true, nil
	}
	return false, nil
}

func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame(r.window[1], true)
	if err != nil || !ok {
		return err
	}
	r.real[1] = true
	copy(r.window[0], r.window[1])

	for i := 2; i < 4; i++ {
		ok, err := r.readFrame(r.window[i], false)
		if err != nil {
			return err
		}
		if !ok {
			copy(r.window[i], r.window[i-1])
		}
		r.real[i] = ok
	}
	return nil
}

// advance shifts the window one source frame forward.
func (r *Resampler) advance() error {
	r.window[0], r.window[1], r.window[2], r.window[3] = r.window[1], r.window[2], r.window[3], r.window[0]
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]

	ok := false
	if r.real[2] {
		var err error
		ok, err = r.readFrame(r.window[3], false)
		if err != nil {
			return err
		}
	}
	if !ok {
		copy(r.window[3], r.window[2])
	}
	r.real[3] = ok
	return nil
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	framesNeeded := len(dst) / r.channels
	written := 0

	for written < framesNeeded {
		for r.pos >= 1.0 && r.real[1] {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.real[1] {
			return written * r.channels, io.EOF
		}

		alpha := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.window[0][c], r.window[1][c], r.window[2][c], r.window[3][c], alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
