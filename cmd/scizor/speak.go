package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scizor/internal/backend"
)

func newSpeakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speak <text>",
		Short: "Synthesize speech for text via the AI backend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if err := bindViper(cmd, v); err != nil {
				return err
			}

			dataDir, err := resolveDataDir(v)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(v, dataDir)
			if err != nil {
				return err
			}

			client := backend.NewClient(cfg.BackendURL)
			audio, err := client.Speech(cmd.Context(), backend.SpeechRequest{
				Text:  strings.Join(args, " "),
				Voice: v.GetString("voice"),
				Speed: v.GetFloat64("speed"),
			})
			if err != nil {
				return err
			}

			out := v.GetString("out")
			if err := os.WriteFile(out, audio, 0644); err != nil {
				return err
			}
			fmt.Printf("wrote %d bytes to %s\n", len(audio), out)
			return nil
		},
	}

	addCommonFlags(cmd)
	cmd.Flags().String("backend-url", "", "AI backend base URL (default http://localhost:5000)")
	cmd.Flags().String("out", "speech.mp3", "output audio file")
	cmd.Flags().String("voice", "", "voice name (backend default: alloy)")
	cmd.Flags().Float64("speed", 0, "speech speed (backend default: 1.0)")

	return cmd
}
