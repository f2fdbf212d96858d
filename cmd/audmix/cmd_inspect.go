// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/breaks"
	"github.com/ik5/audmix/silence"
	"github.com/ik5/audmix/timeline"
	"github.com/spf13/cobra"
)

func newSilenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "silence FILE",
		Short: "List the pauses detected in an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			a, err := decodeFile(args[0])
			if err != nil {
				return err
			}

			d := silence.New(silence.WithConfig(e.cfg.Silence), silence.WithLogger(e.log))
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "START\tDURATION")
			for _, s := range d.Detect(a) {
				fmt.Fprintf(w, "%.3f\t%.3f\n", s.Start, s.Duration)
			}
			return w.Flush()
		},
	}
}

func newBreaksCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "breaks",
		Short: "Locate the break markers of a script",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			text, err := readScript(cmd)
			if err != nil {
				return err
			}

			var speech *audio.Asset
			if path, _ := cmd.Flags().GetString("speech"); path != "" {
				if speech, err = decodeFile(path); err != nil {
					return err
				}
			}

			p := breaks.New(
				breaks.WithConfig(e.cfg.Breaks),
				breaks.WithDetector(silence.New(silence.WithConfig(e.cfg.Silence), silence.WithLogger(e.log))),
				breaks.WithLogger(e.log),
			)
			markers, method := p.Parse(text, speech)

			fmt.Fprintf(cmd.OutOrStdout(), "method: %s\n", method)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POSITION\tDURATION")
			for _, m := range markers {
				fmt.Fprintf(w, "%.3f\t%.3f\n", m.Position, m.Duration)
			}
			return w.Flush()
		},
	}
	addScriptFlags(c)
	c.Flags().String("speech", "", "speech file to align the markers with")
	return c
}

func newTimelineCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "timeline",
		Short: "Print the mix timeline for a speech length",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			duration, _ := cmd.Flags().GetFloat64("speech-duration")
			if path, _ := cmd.Flags().GetString("speech"); path != "" {
				a, err := decodeFile(path)
				if err != nil {
					return err
				}
				duration = a.Duration()
			}

			tl := timeline.Build(e.cfg.Mix, duration)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "STAGE\tSTART\tEND")
			for _, s := range tl.Stages() {
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", s.Name, s.Start, s.End)
			}
			return w.Flush()
		},
	}
	c.Flags().Float64("speech-duration", 0, "speech length in seconds")
	c.Flags().String("speech", "", "speech file to take the length from")
	c.MarkFlagsMutuallyExclusive("speech-duration", "speech")
	return c
}
