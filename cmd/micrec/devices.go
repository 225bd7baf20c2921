package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List available recording devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := newRecorder()
		defer func() {
			if err := rec.Teardown(); err != nil {
				log.Error().Err(err).Msg("Failed to close audio worker")
			}
		}()

		devices, err := rec.EnumerateDevices()
		if err != nil {
			return err
		}

		if len(devices) == 0 {
			fmt.Println("No recording devices found")
			return nil
		}
		for _, d := range devices {
			marker := " "
			if d.DeviceID == cfg.Audio.DeviceID {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, d.Label)
		}
		return nil
	},
}
