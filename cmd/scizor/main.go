// scizor: clipboard history, quick notes and AI assist for the desktop.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "scizor",
		Short: "Clipboard history, quick notes and AI assist",
		Long: `scizor watches the system clipboard into a bounded, deduplicated
history, keeps quick notes, and wires four global hotkeys:

  Ctrl+Alt+S  toggle the dashboard
  Ctrl+Alt+N  create a note from the selected text
  Ctrl+Alt+H  enhance the selected prompt via the AI backend
  Ctrl+Alt+G  generate a response for the selected text

Run "scizor run" for the dashboard. "scizor history" and "scizor notes"
work against the same database from any terminal.

All flags can be set via SCIZOR_<FLAG> env vars or the config file at
~/.scizor/config.json.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newRunCmd(),
		newHistoryCmd(),
		newNotesCmd(),
		newSpeakCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("scizor %s\n", Version)
		},
	}
}
