package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/petems/micrec/internal/audio"
	"github.com/petems/micrec/internal/config"
	"github.com/petems/micrec/internal/logging"
	"github.com/petems/micrec/internal/recorder"
	"github.com/petems/micrec/internal/worker"
)

var (
	cfg      *config.Config
	log      zerolog.Logger
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "micrec",
	Short: "Exclusive microphone capture tool",
	Long: `micrec records from a single microphone through one dedicated audio
worker. All commands against the device are fully serialized, so the
device is never opened twice and requests never interleave.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		log = logging.NewWithLevel(cfg.LogLevel)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(recordCmd)
}

// newRecorder wires a Manager over a portaudio-backed worker. The
// worker (and the audio host) is not touched until the first operation.
func newRecorder() *recorder.Manager {
	spawn := func() (chan<- worker.Command, <-chan worker.Response, error) {
		capture, err := audio.New(cfg.Audio.SampleRate)
		if err != nil {
			return nil, nil, err
		}
		cmds, resps := worker.Spawn(capture, log)
		return cmds, resps, nil
	}
	return recorder.New(spawn, log)
}
