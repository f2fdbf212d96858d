// SPDX-License-Identifier: EPL-2.0

package silence

import (
	"math"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
	"go.uber.org/zap"
)

// Segment is a quiet interval, in seconds from the start of the asset.
type Segment struct {
	Start    float64
	Duration float64
}

func (s Segment) End() float64 { return s.Start + s.Duration }

// Detector scans assets for silence. The zero value is not usable; build
// one with New.
type Detector struct {
	cfg    Config
	logger *zap.Logger
}

type Option func(*Detector)

func WithConfig(cfg Config) Option {
	return func(d *Detector) { d.cfg = cfg.WithDefaults() }
}

func WithLogger(l *zap.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}

func New(opts ...Option) *Detector {
	d := &Detector{cfg: DefaultConfig(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns the effective configuration.
func (d *Detector) Config() Config { return d.cfg }

// Detect runs a detector with the default configuration.
func Detect(a *audio.Asset) []Segment {
	return New().Detect(a)
}

// Detect returns the silent segments of a, sorted by start time. An empty
// or invalid asset yields no segments.
func (d *Detector) Detect(a *audio.Asset) []Segment {
	mono, err := audio.Downmix(a)
	if err != nil || len(mono) == 0 {
		d.logger.Debug("silence detection skipped", zap.Error(err))
		return nil
	}

	rate := a.SampleRate
	window := max(1, utils.SecondsToFrames(d.cfg.Window, rate))
	step := max(1, utils.SecondsToFrames(d.cfg.Step, rate))
	window = min(window, len(mono))

	// prefix[i] is the sum of |x| over mono[:i].
	prefix := make([]float64, len(mono)+1)
	for i, v := range mono {
		prefix[i+1] = prefix[i] + math.Abs(float64(v))
	}

	var (
		raw     []Segment
		inRun   bool
		runFrom int
		runTo   int
	)
	closeRun := func() {
		if inRun {
			raw = append(raw, d.segment(runFrom, runTo, rate))
			inRun = false
		}
	}

	for pos := 0; pos+window <= len(mono); pos += step {
		mean := (prefix[pos+window] - prefix[pos]) / float64(window)
		if mean >= d.cfg.Threshold {
			closeRun()
			continue
		}
		if !inRun {
			inRun = true
			runFrom = pos
		}
		runTo = pos + window
	}
	closeRun()

	segs := merge(filter(raw, d.cfg.MinDuration), d.cfg.MergeGap)

	d.logger.Debug("silence detected",
		zap.Float64("duration", a.Duration()),
		zap.Int("raw", len(raw)),
		zap.Int("segments", len(segs)),
	)
	return segs
}

func (d *Detector) segment(from, to, rate int) Segment {
	return Segment{
		Start:    utils.FramesToSeconds(from, rate),
		Duration: utils.FramesToSeconds(to-from, rate),
	}
}

func filter(segs []Segment, minDuration float64) []Segment {
	out := segs[:0]
	for _, s := range segs {
		if s.Duration >= minDuration {
			out = append(out, s)
		}
	}
	return out
}

// merge extends a segment over any following segment that starts less than
// gap seconds after it ends. segs must be sorted.
func merge(segs []Segment, gap float64) []Segment {
	if len(segs) == 0 {
		return nil
	}

	out := []Segment{segs[0]}
	for _, s := range segs[1:] {
		last := &out[len(out)-1]
		if s.Start-last.End() < gap {
			last.Duration = max(last.End(), s.End()) - last.Start
			continue
		}
		out = append(out, s)
	}
	return out
}
