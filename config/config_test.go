// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ik5/audmix/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "audmix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, timeline.DefaultConfig(), cfg.Mix)
	assert.Equal(t, 0.015, cfg.Silence.Threshold)
	assert.Equal(t, 4.5, cfg.Breaks.DefaultBreak)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Render.Parallel)
	assert.Equal(t, "mix.wav", cfg.Output.Path)
	assert.True(t, cfg.Output.SpeechOnlyFallback)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 64, cfg.Log.MaxSize)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, 7, cfg.Log.MaxAge)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
mix:
  intro_duration: 22
  intro_fade_duration: 7
  fade_type: exponential
  music_volume: 0.5
  outro_enabled: false
silence:
  threshold: 0.02
breaks:
  default_break: 2
render:
  parallel: 2
assets:
  music: beds/music.mp3
  break: /abs/chime.wav
output:
  path: out.wav
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 22.0, cfg.Mix.IntroDuration)
	assert.Equal(t, 7.0, cfg.Mix.IntroFadeDuration)
	assert.Equal(t, timeline.FadeExponential, cfg.Mix.FadeType)
	assert.Equal(t, 0.5, cfg.Mix.MusicVolume)
	assert.False(t, cfg.Mix.OutroEnabled)

	// Keys missing from the file keep their defaults.
	assert.True(t, cfg.Mix.Enabled)
	assert.Equal(t, 1.0, cfg.Mix.SpeechVolume)
	assert.Equal(t, 6.0, cfg.Mix.OutroDuration)
	assert.Equal(t, 0.05, cfg.Silence.Window)
	assert.Equal(t, 0.7, cfg.Breaks.MatchRatio)

	assert.Equal(t, 0.02, cfg.Silence.Threshold)
	assert.Equal(t, 2.0, cfg.Breaks.DefaultBreak)
	assert.Equal(t, 2, cfg.Render.Parallel)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "beds", "music.mp3"), cfg.Assets.Music)
	assert.Equal(t, "/abs/chime.wav", cfg.Assets.Break)
	assert.Empty(t, cfg.Assets.Intro)
	assert.Equal(t, "out.wav", cfg.Output.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("AUDMIX_TEST_MUSIC", "/srv/music/bed.ogg")
	t.Setenv("AUDMIX_TEST_LEVEL", "warn")

	path := writeConfig(t, `
assets:
  music: ${AUDMIX_TEST_MUSIC}
log:
  level: $AUDMIX_TEST_LEVEL
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/music/bed.ogg", cfg.Assets.Music)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{name: "bad yaml", content: "mix: [unclosed"},
		{name: "volume out of range", content: "mix:\n  music_volume: 3\n", invalid: true},
		{name: "unknown fade", content: "mix:\n  fade_type: cosine\n", invalid: true},
		{name: "unknown level", content: "log:\n  level: loud\n", invalid: true},
		{name: "unknown format", content: "log:\n  format: xml\n", invalid: true},
		{name: "negative parallel", content: "render:\n  parallel: -1\n", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSetDefaults_DoesNotOverride(t *testing.T) {
	cfg := &Config{}
	cfg.Render.Parallel = 1
	cfg.Output.Path = "custom.wav"
	cfg.Log.MaxSize = 10

	setDefaults(cfg)

	assert.Equal(t, 1, cfg.Render.Parallel)
	assert.Equal(t, "custom.wav", cfg.Output.Path)
	assert.Equal(t, 10, cfg.Log.MaxSize)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
}
