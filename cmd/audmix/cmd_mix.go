// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/breaks"
	"github.com/ik5/audmix/render"
	"github.com/ik5/audmix/silence"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMixCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "mix SPEECH",
		Short: "Mix a speech file with music and break effects",
		Args:  cobra.ExactArgs(1),
		RunE:  runMix,
	}
	addScriptFlags(c)
	c.Flags().StringP("output", "o", "", "output WAV file (default from config)")
	c.Flags().String("intro", "", "intro music file")
	c.Flags().String("outro", "", "outro music file")
	c.Flags().String("music", "", "music bed used when intro or outro is missing")
	c.Flags().String("break", "", "break sound effect file")
	c.Flags().Bool("no-mix", false, "write the speech unchanged")
	c.Flags().Bool("no-fallback", false, "fail instead of writing plain speech when mixing fails")
	return c
}

func runMix(cmd *cobra.Command, args []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	defer e.close()

	cfg := e.cfg
	for flag, dst := range map[string]*string{
		"intro":  &cfg.Assets.Intro,
		"outro":  &cfg.Assets.Outro,
		"music":  &cfg.Assets.Music,
		"break":  &cfg.Assets.Break,
		"output": &cfg.Output.Path,
	} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*dst = v
		}
	}
	if noMix, _ := cmd.Flags().GetBool("no-mix"); noMix {
		cfg.Mix.Enabled = false
	}
	if noFallback, _ := cmd.Flags().GetBool("no-fallback"); noFallback {
		cfg.Output.SpeechOnlyFallback = false
	}

	text, err := readScript(cmd)
	if err != nil {
		return err
	}

	speech, err := decodeFile(args[0])
	if err != nil {
		return err
	}

	req := audmix.Request{Speech: speech, Text: text, Config: cfg.Mix}
	if cfg.Mix.Enabled {
		for _, a := range []struct {
			path string
			dst  **audio.Asset
		}{
			{cfg.Assets.Intro, &req.Assets.Intro},
			{cfg.Assets.Outro, &req.Assets.Outro},
			{cfg.Assets.Music, &req.Assets.Music},
			{cfg.Assets.Break, &req.Assets.Break},
		} {
			if *a.dst, err = decodeOptional(a.path); err != nil {
				return err
			}
		}
	}

	mixer := audmix.New(
		audmix.WithLogger(e.log),
		audmix.WithParser(breaks.New(
			breaks.WithConfig(cfg.Breaks),
			breaks.WithDetector(silence.New(silence.WithConfig(cfg.Silence), silence.WithLogger(e.log))),
			breaks.WithLogger(e.log),
		)),
		audmix.WithRenderer(render.New(render.WithOptions(cfg.Render), render.WithLogger(e.log))),
	)

	res, err := mixer.Mix(cmd.Context(), req)
	if err != nil {
		if !cfg.Output.SpeechOnlyFallback || !fallbackAllowed(err) {
			return err
		}
		e.log.Warn("mix failed, writing speech only", zap.Error(err))
		if res, err = mixer.SpeechOnly(cmd.Context(), speech); err != nil {
			return err
		}
	}

	if err := os.WriteFile(cfg.Output.Path, res.WAV, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.Output.Path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %s, %.2fs, %d Hz, %d ch",
		cfg.Output.Path, res.Mode, res.Asset.Duration(), res.Asset.SampleRate, res.Asset.Channels())
	if len(res.Markers) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), ", %d breaks (%s)", len(res.Markers), res.Method)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

// fallbackAllowed reports whether plain speech can stand in for a failed
// mix. A busy mixer or an unencodable speech track cannot be helped.
func fallbackAllowed(err error) bool {
	if errors.Is(err, audmix.ErrBusy) || errors.Is(err, audmix.ErrNoSpeech) {
		return false
	}
	return errors.Is(err, audmix.ErrConfiguration) || errors.Is(err, audmix.ErrRender)
}
