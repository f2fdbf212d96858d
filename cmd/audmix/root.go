// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/config"
	"github.com/ik5/audmix/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "audmix",
		Short:         "Offline speech and music mixer",
		Long:          "Mixes a synthesized speech track with intro and outro music and break effects into a 16-bit PCM WAV file.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "YAML config file")
	root.PersistentFlags().String("log-level", "", "override the configured log level")

	root.AddCommand(newMixCmd())
	root.AddCommand(newSilenceCmd())
	root.AddCommand(newBreaksCmd())
	root.AddCommand(newTimelineCmd())
	return root
}

// env is what every subcommand starts from.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	close func() error
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}

	logCfg := cfg.Log
	logCfg.Output = cmd.ErrOrStderr()
	log, closeLog, err := logger.New(logCfg)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, log: log, close: closeLog}, nil
}

func decodeFile(path string) (*audio.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	a, err := audmix.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// decodeOptional decodes path unless it is empty.
func decodeOptional(path string) (*audio.Asset, error) {
	if path == "" {
		return nil, nil
	}
	return decodeFile(path)
}

// readScript returns the inline script, or the contents of the script file.
func readScript(cmd *cobra.Command) (string, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		return text, nil
	}
	path, _ := cmd.Flags().GetString("text-file")
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func addScriptFlags(cmd *cobra.Command) {
	cmd.Flags().String("text", "", "script the speech was synthesized from")
	cmd.Flags().String("text-file", "", "file holding the script")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")
}
