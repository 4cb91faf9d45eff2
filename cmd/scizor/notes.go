package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"scizor/internal/notes"
	"scizor/internal/store"
)

func newNotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage quick notes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Print all notes",
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

			sort, _ := cmd.Flags().GetString("sort")
			svc := notes.NewService(st)
			for _, n := range svc.List(store.NoteSort(sort)) {
				title := n.Title
				if title == "" {
					title = "Untitled"
				}
				fmt.Printf("%6d  p%d  %s  %s\n", n.ID, n.Priority, n.CreatedAt.Format("2006-01-02 15:04"), title)
			}
			return nil
		},
	}
	addCommonFlags(list)
	list.Flags().String("sort", "time_created", "sort order: priority|name|time_created")

	add := &cobra.Command{
		Use:   "add <content>",
		Short: "Create a note; the title is derived from the first line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if err := bindViper(cmd, v); err != nil {
				return err
			}

			st, err := openStore(v)
			if err != nil {
				return err
			}
			defer st.Close()

			priority, _ := cmd.Flags().GetInt("priority")
			svc := notes.NewService(st)
			note, err := svc.CreateFromText(strings.Join(args, " "), priority)
			if err != nil {
				return err
			}
			fmt.Printf("created note %d: %s\n", note.ID, note.Title)
			return nil
		},
	}
	addCommonFlags(add)
	add.Flags().Int("priority", 1, "priority 1-5, 5 highest")

	search := &cobra.Command{
		Use:   "search <term>",
		Short: "Find notes whose title or content contains a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			if err := bindViper(cmd, v); err != nil {
				return err
			}

			st, err := openStore(v)
			if err != nil {
				return err
			}
			defer st.Close()

			svc := notes.NewService(st)
			for _, n := range svc.Search(args[0]) {
				title := n.Title
				if title == "" {
					title = "Untitled"
				}
				fmt.Printf("%6d  p%d  %s  %s\n", n.ID, n.Priority, n.CreatedAt.Format("2006-01-02 15:04"), title)
			}
			return nil
		},
	}
	addCommonFlags(search)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a note",
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

			if !notes.NewService(st).Delete(id) {
				fmt.Printf("no note with id %d\n", id)
			}
			return nil
		},
	}
	addCommonFlags(del)

	export := &cobra.Command{
		Use:   "export",
		Short: "Export all notes as plain text",
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

			fmt.Print(notes.NewService(st).ExportText())
			return nil
		},
	}
	addCommonFlags(export)

	cmd.AddCommand(list, add, search, del, export)
	return cmd
}
