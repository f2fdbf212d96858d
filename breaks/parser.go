// SPDX-License-Identifier: EPL-2.0

package breaks

import (
	"cmp"
	"math"
	"slices"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/silence"
	"go.uber.org/zap"
)

// Marker is a pause located in the speech, in seconds from speech start.
type Marker struct {
	Position float64
	Duration float64
}

// Method records how marker positions were obtained.
type Method int

const (
	MethodNone Method = iota
	MethodAligned
	MethodEstimated
)

func (m Method) String() string {
	switch m {
	case MethodAligned:
		return "aligned"
	case MethodEstimated:
		return "estimated"
	default:
		return "none"
	}
}

// Config tunes the parser. Durations are in seconds.
type Config struct {
	DefaultBreak   float64 `yaml:"default_break"`
	WordsPerSecond float64 `yaml:"words_per_second"`
	MatchRatio     float64 `yaml:"match_ratio"`
	MinSpeaking    float64 `yaml:"min_speaking"`
}

func DefaultConfig() Config {
	return Config{
		DefaultBreak:   DefaultBreak,
		WordsPerSecond: 2.5,
		MatchRatio:     0.7,
		MinSpeaking:    1,
	}
}

// WithDefaults fills non-positive fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.DefaultBreak <= 0 {
		c.DefaultBreak = d.DefaultBreak
	}
	if c.WordsPerSecond <= 0 {
		c.WordsPerSecond = d.WordsPerSecond
	}
	if c.MatchRatio <= 0 {
		c.MatchRatio = d.MatchRatio
	}
	if c.MinSpeaking <= 0 {
		c.MinSpeaking = d.MinSpeaking
	}
	return c
}

type Parser struct {
	cfg      Config
	detector *silence.Detector
	logger   *zap.Logger
}

type Option func(*Parser)

func WithConfig(cfg Config) Option {
	return func(p *Parser) { p.cfg = cfg.WithDefaults() }
}

// WithDetector replaces the silence detector used for alignment.
func WithDetector(d *silence.Detector) Option {
	return func(p *Parser) {
		if d != nil {
			p.detector = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

func New(opts ...Option) *Parser {
	p := &Parser{cfg: DefaultConfig(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.detector == nil {
		p.detector = silence.New(silence.WithLogger(p.logger))
	}
	return p
}

// Parse runs a parser with the default configuration.
func Parse(text string, speech *audio.Asset) ([]Marker, Method) {
	return New().Parse(text, speech)
}

// Parse locates the break tags of text inside speech. speech may be nil, in
// which case positions are always estimated from the word rate. Text without
// break tags yields no markers and MethodNone.
func (p *Parser) Parse(text string, speech *audio.Asset) ([]Marker, Method) {
	expected := Extract(text, p.cfg.DefaultBreak)
	if len(expected) == 0 {
		return nil, MethodNone
	}

	if speech != nil {
		if markers, ok := p.align(expected, p.detector.Detect(speech)); ok {
			return markers, MethodAligned
		}
	}

	return p.estimate(expected, CountWords(text), speech.Duration()), MethodEstimated
}

// align matches every expected pause to a distinct silence. It fails as a
// whole when any pause has no candidate.
func (p *Parser) align(expected []Expected, segs []silence.Segment) ([]Marker, bool) {
	used := make([]bool, len(segs))
	markers := make([]Marker, 0, len(expected))

	for i, e := range expected {
		best, bestDiff := -1, math.Inf(1)
		for j, s := range segs {
			if used[j] || s.Duration < p.cfg.MatchRatio*e.Duration {
				continue
			}
			if diff := math.Abs(s.Duration - e.Duration); diff < bestDiff {
				best, bestDiff = j, diff
			}
		}

		if best < 0 {
			p.logger.Warn("break alignment incomplete, falling back to word-rate estimate",
				zap.Int("expected", len(expected)),
				zap.Int("matched", i),
				zap.Int("silences", len(segs)),
				zap.Float64("unmatched_duration", e.Duration),
			)
			return nil, false
		}

		used[best] = true
		markers = append(markers, Marker{Position: segs[best].Start, Duration: e.Duration})
	}

	slices.SortStableFunc(markers, func(a, b Marker) int {
		return cmp.Compare(a.Position, b.Position)
	})
	return markers, true
}

// estimate places markers by speaking rate. With a known speech duration the
// rate is derived from the words spoken outside the pauses.
func (p *Parser) estimate(expected []Expected, totalWords int, speechDuration float64) []Marker {
	rate := p.cfg.WordsPerSecond
	if speechDuration > 0 && totalWords > 0 {
		var pauses float64
		for _, e := range expected {
			pauses += e.Duration
		}
		rate = float64(totalWords) / max(speechDuration-pauses, p.cfg.MinSpeaking)
	}

	markers := make([]Marker, len(expected))
	var prior float64
	for i, e := range expected {
		markers[i] = Marker{
			Position: float64(e.WordsBefore)/rate + prior,
			Duration: e.Duration,
		}
		prior += e.Duration
	}

	p.logger.Debug("break positions estimated",
		zap.Int("markers", len(markers)),
		zap.Float64("words_per_second", rate),
	)
	return markers
}
