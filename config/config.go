// SPDX-License-Identifier: EPL-2.0

// Package config loads the YAML configuration of the audmix command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ik5/audmix/breaks"
	"github.com/ik5/audmix/logger"
	"github.com/ik5/audmix/render"
	"github.com/ik5/audmix/silence"
	"github.com/ik5/audmix/timeline"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Mix     timeline.Config `yaml:"mix"`
	Silence silence.Config  `yaml:"silence"`
	Breaks  breaks.Config   `yaml:"breaks"`
	Render  render.Options  `yaml:"render"`
	Assets  AssetsConfig    `yaml:"assets"`
	Output  OutputConfig    `yaml:"output"`
	Log     logger.Config   `yaml:"log"`
}

// AssetsConfig holds paths of the music and effect beds. Relative paths
// are resolved against the directory of the config file.
type AssetsConfig struct {
	Intro string `yaml:"intro"`
	Outro string `yaml:"outro"`
	Music string `yaml:"music"`
	Break string `yaml:"break"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
	// SpeechOnlyFallback writes the plain speech when mixing fails.
	SpeechOnlyFallback bool `yaml:"speech_only_fallback"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		Mix:     timeline.DefaultConfig(),
		Silence: silence.DefaultConfig(),
		Breaks:  breaks.DefaultConfig(),
		Output:  OutputConfig{SpeechOnlyFallback: true},
	}
	setDefaults(cfg)
	return cfg
}

// Load reads a YAML config file. ${VAR} references are expanded from the
// environment before parsing and keys absent from the file keep their
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	expanded := os.Expand(string(data), os.Getenv)

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	setDefaults(cfg)
	cfg.Assets.resolve(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Mix = cfg.Mix.WithDefaults()
	cfg.Silence = cfg.Silence.WithDefaults()
	cfg.Breaks = cfg.Breaks.WithDefaults()

	if cfg.Render.Parallel == 0 {
		cfg.Render.Parallel = runtime.GOMAXPROCS(0)
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = "mix.wav"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.MaxSize == 0 {
		cfg.Log.MaxSize = 64
	}
	if cfg.Log.MaxBackups == 0 {
		cfg.Log.MaxBackups = 3
	}
	if cfg.Log.MaxAge == 0 {
		cfg.Log.MaxAge = 7
	}
}

func (a *AssetsConfig) resolve(dir string) {
	for _, p := range []*string{&a.Intro, &a.Outro, &a.Music, &a.Break} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Validate checks the values a mix cannot run with.
func (c *Config) Validate() error {
	if err := c.Mix.Validate(); err != nil {
		return fmt.Errorf("mix: %w: %w", ErrInvalid, err)
	}
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w: %w", ErrInvalid, err)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log format %q: %w", c.Log.Format, ErrInvalid)
	}
	if c.Render.Parallel < 0 {
		return fmt.Errorf("render parallel %d: %w", c.Render.Parallel, ErrInvalid)
	}
	return nil
}
