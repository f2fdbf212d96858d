// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/breaks"
	"github.com/ik5/audmix/envelope"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/metrics"
	"github.com/ik5/audmix/render"
	"github.com/ik5/audmix/timeline"
	"go.uber.org/zap"
)

// Mode tells how a Result was produced.
type Mode string

const (
	ModeMixed      Mode = "mixed"
	ModeSpeechOnly Mode = "speech-only"
)

// Assets are the optional music and effect beds of a mix. Music stands in
// for a missing Intro or Outro.
type Assets struct {
	Intro *audio.Asset
	Outro *audio.Asset
	Music *audio.Asset
	Break *audio.Asset
}

type Request struct {
	Speech *audio.Asset
	// Text is the script the speech was synthesized from. Its break tags
	// drive break effect placement.
	Text   string
	Config timeline.Config
	Assets Assets
}

// Result is a finished mix.
type Result struct {
	ID    string
	Mode  Mode
	Asset *audio.Asset
	WAV   []byte

	// Timeline is nil for speech-only results.
	Timeline *timeline.Timeline
	Markers  []breaks.Marker
	Method   breaks.Method
}

type Mixer struct {
	busy     atomic.Bool
	parser   *breaks.Parser
	renderer *render.Renderer
	logger   *zap.Logger
}

type Option func(*Mixer)

func WithParser(p *breaks.Parser) Option {
	return func(m *Mixer) {
		if p != nil {
			m.parser = p
		}
	}
}

func WithRenderer(r *render.Renderer) Option {
	return func(m *Mixer) {
		if r != nil {
			m.renderer = r
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Mixer) {
		if l != nil {
			m.logger = l
		}
	}
}

func New(opts ...Option) *Mixer {
	m := &Mixer{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	if m.parser == nil {
		m.parser = breaks.New(breaks.WithLogger(m.logger))
	}
	if m.renderer == nil {
		m.renderer = render.New(render.WithLogger(m.logger))
	}
	return m
}

// Busy reports whether a request is being processed.
func (m *Mixer) Busy() bool { return m.busy.Load() }

func (m *Mixer) acquire(mode Mode) error {
	if !m.busy.CompareAndSwap(false, true) {
		metrics.RecordMix(string(mode), "busy")
		return ErrBusy
	}
	return nil
}

// Mix renders req into a WAV file. A disabled config produces the speech
// unchanged, as SpeechOnly does.
func (m *Mixer) Mix(ctx context.Context, req Request) (*Result, error) {
	if err := m.acquire(ModeMixed); err != nil {
		return nil, err
	}
	defer m.busy.Store(false)

	id := uuid.NewString()
	log := m.logger.With(zap.String("mix_id", id))

	if !req.Config.Enabled {
		log.Debug("mixing disabled, passing speech through")
		return m.speechOnly(ctx, id, req.Speech)
	}

	res, err := m.mix(ctx, id, log, req)
	if err != nil {
		metrics.RecordMix(string(ModeMixed), string(stageOf(err)))
		log.Warn("mix failed", zap.Error(err))
		return nil, err
	}

	metrics.RecordMix(string(ModeMixed), "success")
	log.Info("mix rendered",
		zap.Float64("duration", res.Asset.Duration()),
		zap.Int("sample_rate", res.Asset.SampleRate),
		zap.Int("channels", res.Asset.Channels()),
		zap.Int("markers", len(res.Markers)),
		zap.Stringer("method", res.Method),
	)
	return res, nil
}

func (m *Mixer) mix(ctx context.Context, id string, log *zap.Logger, req Request) (*Result, error) {
	if err := req.Speech.Validate(); err != nil {
		return nil, stageError(StageConfigure, fmt.Errorf("%w: %w", ErrNoSpeech, err))
	}

	cfg := req.Config.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, stageError(StageConfigure, err)
	}

	intro := firstPresent(req.Assets.Intro, req.Assets.Music)
	if intro == nil {
		return nil, stageError(StageConfigure, ErrNoIntroAsset)
	}
	var outro *audio.Asset
	if cfg.OutroEnabled {
		outro = firstPresent(req.Assets.Outro, req.Assets.Music)
	}
	var effect *audio.Asset
	if cfg.BreakSoundEnabled {
		effect = firstPresent(req.Assets.Break)
	}

	rate := intro.SampleRate
	channels := outputChannels(req.Speech, intro, outro, effect)

	tl := timeline.Build(cfg, req.Speech.Duration())
	if err := tl.Validate(); err != nil {
		return nil, stageError(StageConfigure, err)
	}

	var (
		markers []breaks.Marker
		method  breaks.Method
	)
	if effect != nil {
		markers, method = m.parser.Parse(req.Text, req.Speech)
		metrics.RecordBreakMarkers(method.String(), len(markers))
		if method == breaks.MethodEstimated {
			metrics.RecordAlignmentFallback()
		}
	}

	tracks, err := m.tracks(tl, cfg, req.Speech, intro, outro, effect, markers, rate)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	out, err := m.renderer.Render(ctx, tracks, tl.TotalDuration, rate, channels)
	metrics.RecordRenderDuration(string(ModeMixed), time.Since(started).Seconds())
	if err != nil {
		return nil, stageError(StageRender, err)
	}

	data, err := wav.EncodeBytes(out)
	if err != nil {
		return nil, stageError(StageEncode, err)
	}

	log.Debug("timeline built",
		zap.Float64("speech_start", tl.SpeechStart),
		zap.Float64("speech_end", tl.SpeechEnd),
		zap.Float64("total", tl.TotalDuration),
		zap.Int("tracks", len(tracks)),
	)

	return &Result{
		ID:       id,
		Mode:     ModeMixed,
		Asset:    out,
		WAV:      data,
		Timeline: &tl,
		Markers:  markers,
		Method:   method,
	}, nil
}

// tracks conforms every asset to rate and schedules it on the timeline.
func (m *Mixer) tracks(tl timeline.Timeline, cfg timeline.Config, speech, intro, outro, effect *audio.Asset, markers []breaks.Marker, rate int) ([]render.Track, error) {
	conformed := make(map[*audio.Asset]*audio.Asset, 4)
	at := func(a *audio.Asset) (*audio.Asset, error) {
		if c, ok := conformed[a]; ok {
			return c, nil
		}
		c, err := conform(a, rate)
		if err != nil {
			return nil, stageError(StageRender, err)
		}
		conformed[a] = c
		return c, nil
	}

	introAsset, err := at(intro)
	if err != nil {
		return nil, err
	}
	speechAsset, err := at(speech)
	if err != nil {
		return nil, err
	}

	tracks := []render.Track{
		{Name: "intro", Asset: introAsset, Envelope: envelope.Intro(tl, cfg)},
		{Name: "speech", Asset: speechAsset, Envelope: envelope.Speech(tl, cfg), Offset: tl.SpeechStart},
	}

	if outro != nil {
		outroAsset, err := at(outro)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, render.Track{
			Name:     "outro",
			Asset:    outroAsset,
			Envelope: envelope.Outro(tl, cfg),
			Offset:   tl.OutroFadeInStart,
		})
	}

	if effect != nil && len(markers) > 0 {
		effectAsset, err := at(effect)
		if err != nil {
			return nil, err
		}
		for i, mk := range markers {
			start := tl.SpeechStart + mk.Position
			tracks = append(tracks, render.Track{
				Name:     fmt.Sprintf("break-%d", i),
				Asset:    effectAsset,
				Envelope: envelope.Break(start, mk.Duration, effect.Duration(), cfg),
				Offset:   start,
			})
		}
	}

	return tracks, nil
}

// SpeechOnly returns speech unchanged, encoded as WAV. It is the fallback
// when no music is available or a mix failed.
func (m *Mixer) SpeechOnly(ctx context.Context, speech *audio.Asset) (*Result, error) {
	if err := m.acquire(ModeSpeechOnly); err != nil {
		return nil, err
	}
	defer m.busy.Store(false)

	return m.speechOnly(ctx, uuid.NewString(), speech)
}

func (m *Mixer) speechOnly(ctx context.Context, id string, speech *audio.Asset) (*Result, error) {
	res, err := m.bypass(ctx, id, speech)
	if err != nil {
		metrics.RecordMix(string(ModeSpeechOnly), string(stageOf(err)))
		return nil, err
	}
	metrics.RecordMix(string(ModeSpeechOnly), "success")
	m.logger.Info("speech passed through", zap.String("mix_id", id), zap.Float64("duration", speech.Duration()))
	return res, nil
}

func (m *Mixer) bypass(ctx context.Context, id string, speech *audio.Asset) (*Result, error) {
	if err := speech.Validate(); err != nil {
		return nil, stageError(StageConfigure, fmt.Errorf("%w: %w", ErrNoSpeech, err))
	}
	if err := ctx.Err(); err != nil {
		return nil, stageError(StageRender, err)
	}

	out := render.Bypass(speech)
	data, err := wav.EncodeBytes(out)
	if err != nil {
		return nil, stageError(StageEncode, err)
	}

	return &Result{
		ID:     id,
		Mode:   ModeSpeechOnly,
		Asset:  out,
		WAV:    data,
		Method: breaks.MethodNone,
	}, nil
}

func stageOf(err error) Stage {
	var e *Error
	if errors.As(err, &e) {
		return e.Stage
	}
	return StageRender
}
