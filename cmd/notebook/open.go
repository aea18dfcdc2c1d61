package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notebook-md/notebookmd/internal/location"
	"github.com/notebook-md/notebookmd/internal/model"
	"github.com/notebook-md/notebookmd/internal/usecase"
)

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <location>",
		Short: "Resolve an /app location and show what it points at",
		Long: "Resolve a location such as /app/notebook/<id>/section/<id>/page/<id>,\n" +
			"/app/inbox/page/<id> or /app/pages/page/<id>. A section location lists its page tree.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			target, err := s.ws.ResolvePath(args[0])
			if err != nil {
				return err
			}
			return outputTarget(cmd, s.ws, target)
		},
	}
}

func outputTarget(cmd *cobra.Command, ws *usecase.Workspace, target usecase.Target) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Location:  %s\n", location.Format(target.Location))
	if target.Notebook != nil {
		fmt.Fprintf(out, "Notebook:  %s [%s]\n", target.Notebook.Name, target.Notebook.ID)
	}
	if target.Section != nil {
		fmt.Fprintf(out, "Section:   %s [%s]\n", target.Section.Name, target.Section.ID)
	}

	switch {
	case target.Page != nil:
		fmt.Fprintf(out, "Page:      %s [%s]\n", target.Page.Title, target.Page.ID)
		fmt.Fprintf(out, "Path:      %s\n", target.Page.Path)
	case target.Section != nil:
		return outputPages(cmd, ws, sectionPages(ws, target.Section.ID), "table")
	case target.Location.Kind == location.KindHome:
		return outputPages(cmd, ws, ws.Search(""), "table")
	}
	return nil
}

func sectionPages(ws *usecase.Workspace, sectionID string) []model.Page {
	return pageFilter{sectionID: sectionID}.apply(ws)
}
