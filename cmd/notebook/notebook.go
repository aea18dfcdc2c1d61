package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/notebook-md/notebookmd/internal/model"
	"github.com/notebook-md/notebookmd/internal/usecase"
)

func newNotebookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notebook",
		Aliases: []string{"nb"},
		Short:   "Manage notebooks",
	}
	cmd.AddCommand(newNotebookCreateCmd())
	cmd.AddCommand(newNotebookListCmd())
	cmd.AddCommand(newNotebookRenameCmd())
	cmd.AddCommand(newNotebookDeleteCmd())
	return cmd
}

func newNotebookCreateCmd() *cobra.Command {
	var (
		description string
		colour      string
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a notebook and print its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if !cmd.Flags().Changed("colour") {
				colour = settings.NotebookColour
			}
			nb, err := s.ws.CreateNotebook(usecase.NotebookInput{
				Name:        args[0],
				Description: description,
				Colour:      colour,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), nb.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Notebook description")
	cmd.Flags().StringVar(&colour, "colour", "", "Hex colour such as #FFFFFF")
	return cmd
}

type notebookOutputEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Colour      string   `json:"colour"`
	Sections    []string `json:"sections"`
}

func newNotebookListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notebooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			notebooks := s.ws.Notebooks()
			if format == "json" {
				output := make([]notebookOutputEntry, 0, len(notebooks))
				for _, nb := range notebooks {
					output = append(output, notebookOutputEntry{
						ID:          nb.ID,
						Name:        nb.Name,
						Description: nb.Description,
						Colour:      nb.Colour,
						Sections:    append([]string{}, nb.Sections...),
					})
				}
				return outputJSON(cmd, output)
			}
			outputNotebookTable(cmd, notebooks)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func outputNotebookTable(cmd *cobra.Command, notebooks []model.Notebook) {
	t := newTable(cmd)
	t.AppendHeader(table.Row{"ID", "Name", "Colour", "Sections", "Description"})
	descWidth := titleWidth(36+20+9+8, 5)
	for _, nb := range notebooks {
		t.AppendRow(table.Row{nb.ID, truncate(nb.Name, 20), swatch(cmd, nb.Colour), len(nb.Sections), truncate(nb.Description, descWidth)})
	}
	t.Render()
}

func newNotebookRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a notebook",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.ws.RenameNotebook(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed notebook %s\n", args[0])
			return nil
		},
	}
}

func newNotebookDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notebook with its sections and pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			nb, err := s.ws.Notebook(args[0])
			if err != nil {
				return err
			}
			if !force {
				ok, err := confirm(cmd, fmt.Sprintf("Delete notebook '%s' with all its sections and pages? (y/N) ", nb.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
			}

			removed, err := s.ws.DeleteNotebook(nb.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted notebook '%s' (%d sections, %d pages)\n", nb.Name, len(removed.Sections), len(removed.Pages))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")
	return cmd
}
