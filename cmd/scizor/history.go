package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scizor/internal/store"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the clipboard history",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print clipboard history, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			if err := bindViper(cmd, v); err != nil {
				return err
			}

			st, err := openStore(v)
			if err != nil {
				return err
			}
			defer st.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			entries, err := st.GetClipboardHistory(limit)
			if err != nil {
				return err
			}

			for _, e := range entries {
				fmt.Printf("%6d  %s  %s\n", e.ID, e.CreatedAt.Format("2006-01-02 15:04:05"), firstLine(e.Content))
			}
			return nil
		},
	}
	addCommonFlags(list)
	list.Flags().Int("limit", 100, "maximum entries to print")

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete all clipboard history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := viper.New()
			if err := bindViper(cmd, v); err != nil {
				return err
			}

			st, err := openStore(v)
			if err != nil {
				return err
			}
			defer st.Close()

			return st.ClearClipboard()
		},
	}
	addCommonFlags(clear)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one clipboard entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if err := bindViper(cmd, v); err != nil {
				return err
			}

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			st, err := openStore(v)
			if err != nil {
				return err
			}
			defer st.Close()

			found, err := st.DeleteClipboardItem(id)
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("no entry with id %d\n", id)
			}
			return nil
		},
	}
	addCommonFlags(del)

	cmd.AddCommand(list, clear, del)
	return cmd
}

// openStore resolves the data dir and opens the database for a one-shot
// CLI command.
func openStore(v *viper.Viper) (*store.Store, error) {
	dataDir, err := resolveDataDir(v)
	if err != nil {
		return nil, err
	}
	return store.Open(resolveDBPath(v, dataDir))
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i] + " ..."
		}
	}
	return s
}
