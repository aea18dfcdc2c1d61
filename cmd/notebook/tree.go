package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/spf13/cobra"

	"github.com/notebook-md/notebookmd/internal/store"
)

func newPageTreeCmd() *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "tree [section-id]",
		Short: "Print the page tree of a section, or of the inbox",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var sectionID string
			if len(args) == 1 {
				sectionID = args[0]
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			nodes, err := s.ws.Tree(sectionID)
			if err != nil {
				return err
			}
			if len(nodes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pages")
				return nil
			}

			l := list.NewWriter()
			l.SetOutputMirror(cmd.OutOrStdout())
			l.SetStyle(list.StyleConnectedLight)
			appendNodes(l, nodes, includeArchived)
			l.Render()
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeArchived, "include-archived", false, "Include archived pages and their sub-pages")
	return cmd
}

func appendNodes(l list.Writer, nodes []store.Node, includeArchived bool) {
	for _, n := range nodes {
		if n.Page.Archived && !includeArchived {
			continue
		}
		label := fmt.Sprintf("%s  [%s]", n.Page.Title, n.Page.ID)
		if n.Page.Archived {
			label += " (archived)"
		}
		l.AppendItem(label)
		if len(n.Children) > 0 {
			l.Indent()
			appendNodes(l, n.Children, includeArchived)
			l.UnIndent()
		}
	}
}
