// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"fmt"
	"math"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/envelope"
	"github.com/ik5/audmix/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// checkEvery is how many frames are mixed between cancellation checks.
const checkEvery = 1 << 16

// Track is one asset scheduled into the output.
type Track struct {
	Name     string
	Asset    *audio.Asset
	Envelope envelope.Envelope
	Offset   float64 // seconds from render start
}

// Options control how a Renderer spreads work.
type Options struct {
	// Parallel is the number of tracks rendered at once. Values below 2
	// render sequentially.
	Parallel int `yaml:"parallel"`
}

type Renderer struct {
	opts   Options
	logger *zap.Logger
}

type Option func(*Renderer)

func WithOptions(o Options) Option {
	return func(r *Renderer) { r.opts = o }
}

func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

func New(opts ...Option) *Renderer {
	r := &Renderer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render runs a sequential renderer.
func Render(ctx context.Context, tracks []Track, total float64, sampleRate, channels int) (*audio.Asset, error) {
	return New().Render(ctx, tracks, total, sampleRate, channels)
}

// Bypass is the speech-only path: the speech asset is the result.
func Bypass(speech *audio.Asset) *audio.Asset {
	return speech
}

// Render mixes tracks into a new asset of ceil(total*sampleRate) frames.
// A track with fewer channels than the output is repeated across them; extra
// track channels are dropped. On error or cancellation no asset is returned.
func (r *Renderer) Render(ctx context.Context, tracks []Track, total float64, sampleRate, channels int) (*audio.Asset, error) {
	if sampleRate <= 0 || channels <= 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%d Hz, %d channels, %vs: %w", sampleRate, channels, total, ErrInvalidFormat)
	}
	for i, t := range tracks {
		if err := validate(t, sampleRate); err != nil {
			return nil, fmt.Errorf("track %d (%s): %w", i, t.Name, err)
		}
	}

	out := audio.NewAsset(sampleRate, channels, utils.FramesFor(total, sampleRate))

	var err error
	if r.opts.Parallel > 1 && len(tracks) > 1 {
		err = r.renderParallel(ctx, out, tracks)
	} else {
		err = r.renderSequential(ctx, out, tracks)
	}
	if err != nil {
		return nil, err
	}

	r.logger.Debug("render complete",
		zap.Int("tracks", len(tracks)),
		zap.Int("frames", out.Frames()),
		zap.Int("channels", channels),
		zap.Int("sample_rate", sampleRate),
	)
	return out, nil
}

func validate(t Track, sampleRate int) error {
	if err := t.Asset.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTrack, err)
	}
	if t.Asset.SampleRate != sampleRate {
		return fmt.Errorf("%d Hz vs %d Hz: %w", t.Asset.SampleRate, sampleRate, ErrSampleRateMismatch)
	}
	if err := t.Envelope.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTrack, err)
	}
	if math.IsNaN(t.Offset) || math.IsInf(t.Offset, 0) {
		return fmt.Errorf("offset %v: %w", t.Offset, ErrInvalidTrack)
	}
	return nil
}

func (r *Renderer) renderSequential(ctx context.Context, out *audio.Asset, tracks []Track) error {
	for _, t := range tracks {
		s, err := renderSpan(ctx, t, out)
		if err != nil {
			return err
		}
		s.addTo(out)
	}
	return ctx.Err()
}

func (r *Renderer) renderParallel(ctx context.Context, out *audio.Asset, tracks []Track) error {
	spans := make([]span, len(tracks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Parallel)
	for i, t := range tracks {
		g.Go(func() error {
			s, err := renderSpan(gctx, t, out)
			if err != nil {
				return err
			}
			spans[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, s := range spans {
		s.addTo(out)
	}
	return ctx.Err()
}

// span is one track already scaled by its envelope, positioned at start.
type span struct {
	start   int
	samples [][]float32 // one slice per output channel
}

func (s span) addTo(out *audio.Asset) {
	for c, ch := range s.samples {
		dst := out.Samples[c][s.start : s.start+len(ch)]
		for i, v := range ch {
			dst[i] += v
		}
	}
}

func renderSpan(ctx context.Context, t Track, out *audio.Asset) (span, error) {
	rate := out.SampleRate
	start := utils.SecondsToFrames(t.Offset, rate)
	frames := min(t.Asset.Frames(), out.Frames()-start)
	if frames <= 0 {
		return span{}, nil
	}

	gains := make([]float32, frames)
	t.Envelope.Fill(gains, start, rate)

	samples := make([][]float32, out.Channels())
	for c := range samples {
		samples[c] = make([]float32, frames)
	}

	srcChannels := t.Asset.Channels()
	for from := 0; from < frames; from += checkEvery {
		if err := ctx.Err(); err != nil {
			return span{}, fmt.Errorf("rendering %s: %w", t.Name, err)
		}

		to := min(from+checkEvery, frames)
		for c, dst := range samples {
			src := t.Asset.Samples[c%srcChannels]
			for i := from; i < to; i++ {
				dst[i] = float32(src[i] * gains[i])
			}
		}
	}

	return span{start: start, samples: samples}, nil
}
