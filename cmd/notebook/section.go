package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/notebook-md/notebookmd/internal/usecase"
)

func newSectionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "section",
		Aliases: []string{"sec"},
		Short:   "Manage the sections of a notebook",
	}
	cmd.AddCommand(newSectionCreateCmd())
	cmd.AddCommand(newSectionListCmd())
	cmd.AddCommand(newSectionRenameCmd())
	cmd.AddCommand(newSectionDeleteCmd())
	return cmd
}

func newSectionCreateCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "create <notebook-id> <name>",
		Short: "Create a section and print its id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			sec, err := s.ws.CreateSection(usecase.SectionInput{
				NotebookID: args[0],
				Name:       args[1],
				Color:      color,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sec.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Hex colour; a random red-pink one when omitted")
	return cmd
}

type sectionOutputEntry struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NotebookID string `json:"notebookId"`
	Color      string `json:"color"`
	Pages      int    `json:"pages"`
}

func newSectionListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list <notebook-id>",
		Short: "List the sections of a notebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			sections, err := s.ws.Sections(args[0])
			if err != nil {
				return err
			}

			counts := make(map[string]int)
			for _, p := range s.ws.Pages() {
				counts[p.SectionID]++
			}

			output := make([]sectionOutputEntry, 0, len(sections))
			for _, sec := range sections {
				output = append(output, sectionOutputEntry{
					ID:         sec.ID,
					Name:       sec.Name,
					NotebookID: sec.NotebookID,
					Color:      sec.Color,
					Pages:      counts[sec.ID],
				})
			}
			if format == "json" {
				return outputJSON(cmd, output)
			}

			t := newTable(cmd)
			t.AppendHeader(table.Row{"ID", "Name", "Color", "Pages"})
			nameWidth := titleWidth(44+9+5, 4)
			for _, sec := range output {
				t.AppendRow(table.Row{sec.ID, truncate(sec.Name, nameWidth), swatch(cmd, sec.Color), sec.Pages})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func newSectionRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.ws.RenameSection(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed section %s\n", args[0])
			return nil
		},
	}
}

func newSectionDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a section and its pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			sec, err := s.ws.Section(args[0])
			if err != nil {
				return err
			}
			if !force {
				ok, err := confirm(cmd, fmt.Sprintf("Delete section '%s' and all its pages? (y/N) ", sec.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
			}

			pages, err := s.ws.DeleteSection(sec.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted section '%s' (%d pages)\n", sec.Name, len(pages))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")
	return cmd
}
