package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/petems/micrec/internal/wavfile"
)

var (
	recordDevice   string
	recordDuration time.Duration
	recordOutput   string
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone to a WAV file",
	Long: `Record captures from the configured input device until the duration
elapses or an interrupt arrives. Interrupting a timed recording discards
the take instead of saving it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := newRecorder()
		defer func() {
			if err := rec.Teardown(); err != nil {
				log.Error().Err(err).Msg("Failed to close audio worker")
			}
		}()

		device := cfg.Audio.DeviceID
		if recordDevice != "" {
			device = recordDevice
		}

		if err := rec.InitSession(device); err != nil {
			return err
		}
		defer func() {
			if err := rec.CloseSession(); err != nil {
				log.Error().Err(err).Msg("Failed to close recording session")
			}
		}()

		if err := rec.StartRecording(); err != nil {
			return err
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigChan)

		interrupted := false
		if recordDuration > 0 {
			fmt.Printf("Recording for %s (Ctrl-C to discard)...\n", recordDuration)
			select {
			case <-time.After(recordDuration):
			case <-sigChan:
				interrupted = true
			}
		} else {
			fmt.Println("Recording (Ctrl-C to stop)...")
			<-sigChan
		}

		if interrupted {
			if err := rec.CancelRecording(); err != nil {
				return err
			}
			fmt.Println("Recording discarded")
			return nil
		}

		samples, err := rec.StopRecording()
		if err != nil {
			return err
		}

		path := recordOutput
		if path == "" {
			path = filepath.Join(cfg.Output.Dir, time.Now().Format("20060102-150405")+".wav")
		}
		if err := wavfile.Save(path, samples, cfg.Audio.SampleRate); err != nil {
			return err
		}

		fmt.Printf("Wrote %s (%s, %d samples)\n",
			path, wavfile.Duration(samples, cfg.Audio.SampleRate).Round(time.Millisecond), len(samples))
		return nil
	},
}

func init() {
	recordCmd.Flags().StringVarP(&recordDevice, "device", "d", "", "input device label (overrides config)")
	recordCmd.Flags().DurationVarP(&recordDuration, "duration", "t", 0, "recording length; 0 records until interrupted")
	recordCmd.Flags().StringVarP(&recordOutput, "output", "o", "", "output WAV path (default: timestamped file in the configured dir)")
}
