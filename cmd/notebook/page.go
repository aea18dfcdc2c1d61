package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/notebook-md/notebookmd/internal/location"
	"github.com/notebook-md/notebookmd/internal/model"
	"github.com/notebook-md/notebookmd/internal/store"
	"github.com/notebook-md/notebookmd/internal/usecase"
)

func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage pages and their hierarchy",
	}
	cmd.AddCommand(newPageCreateCmd())
	cmd.AddCommand(newPageShowCmd())
	cmd.AddCommand(newPageSetCmd())
	cmd.AddCommand(newPageEditCmd())
	cmd.AddCommand(newPageRenameCmd())
	cmd.AddCommand(newPageArchiveCmd())
	cmd.AddCommand(newPageDeleteCmd())
	cmd.AddCommand(newPageMoveCmd())
	cmd.AddCommand(newPageRepositionCmd())
	cmd.AddCommand(newPageTreeCmd())
	cmd.AddCommand(newPageListCmd())
	return cmd
}

func newPageCreateCmd() *cobra.Command {
	var (
		sectionID string
		parentID  string
		filePath  string
		data      string
	)

	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a page and print its id",
		Long: "Create a page in a section, under a parent page, or in the inbox when neither is given.\n" +
			"A child page without --section stays uncategorized, whatever its parent's section.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath != "" && cmd.Flags().Changed("data") {
				return fmt.Errorf("--file and --data cannot be used together")
			}
			if filePath != "" {
				content, err := readContent(cmd, filePath)
				if err != nil {
					return err
				}
				data = content
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.ws.CreatePage(usecase.PageInput{
				SectionID:    sectionID,
				ParentPageID: parentID,
				Title:        args[0],
				Data:         model.Content(data),
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&sectionID, "section", "s", "", "Section to file the page in")
	cmd.Flags().StringVarP(&parentID, "parent", "p", "", "Parent page id")
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read content from file")
	cmd.Flags().StringVar(&data, "data", "", "Content as a literal string")
	return cmd
}

type pageOutputEntry struct {
	ID           string `json:"id"`
	SectionID    string `json:"sectionId,omitempty"`
	ParentPageID string `json:"parentPageId,omitempty"`
	Title        string `json:"title"`
	Path         string `json:"path"`
	Level        int    `json:"level"`
	CreationDate string `json:"creationDate"`
	EditedDate   string `json:"editedDate"`
	Archived     bool   `json:"archived"`
	Location     string `json:"location"`
	Data         string `json:"data,omitempty"`
}

func newPageShowCmd() *cobra.Command {
	var (
		format      string
		contentOnly bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show page metadata, or only its content with --content",
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

			p, err := s.ws.Page(args[0])
			if err != nil {
				return err
			}
			if contentOnly {
				_, err := fmt.Fprint(cmd.OutOrStdout(), string(p.Data))
				return err
			}

			loc, err := s.ws.LocationOf(p.ID)
			if err != nil {
				return err
			}
			entry := pageEntry(p, location.Format(loc))
			if format == "json" {
				entry.Data = string(p.Data)
				return outputJSON(cmd, entry)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:        %s\n", entry.ID)
			fmt.Fprintf(out, "Title:     %s\n", entry.Title)
			fmt.Fprintf(out, "Section:   %s\n", emptyOr(entry.SectionID, "(inbox)"))
			fmt.Fprintf(out, "Parent:    %s\n", emptyOr(entry.ParentPageID, "(root)"))
			fmt.Fprintf(out, "Path:      %s\n", entry.Path)
			fmt.Fprintf(out, "Level:     %d\n", entry.Level)
			fmt.Fprintf(out, "Created:   %s\n", formatTime(p.CreationDate))
			fmt.Fprintf(out, "Edited:    %s\n", formatTime(p.EditedDate))
			fmt.Fprintf(out, "Archived:  %t\n", entry.Archived)
			fmt.Fprintf(out, "Location:  %s\n", entry.Location)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	cmd.Flags().BoolVar(&contentOnly, "content", false, "Print only the page content")
	return cmd
}

func pageEntry(p model.Page, loc string) pageOutputEntry {
	return pageOutputEntry{
		ID:           p.ID,
		SectionID:    p.SectionID,
		ParentPageID: p.ParentPageID,
		Title:        p.Title,
		Path:         p.Path,
		Level:        p.Level,
		CreationDate: p.CreationDate.UTC().Format(time.RFC3339),
		EditedDate:   p.EditedDate.UTC().Format(time.RFC3339),
		Archived:     p.Archived,
		Location:     loc,
	}
}

func newPageSetCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Replace page content from stdin or a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readContent(cmd, filePath)
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			data := model.Content(content)
			if _, err := s.ws.UpdatePage(args[0], store.PagePatch{Data: &data}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Page updated")
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Read content from file instead of stdin")
	return cmd
}

func newPageRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Change a page title",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			title := args[1]
			if _, err := s.ws.UpdatePage(args[0], store.PagePatch{Title: &title}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed page %s\n", args[0])
			return nil
		},
	}
}

func newPageArchiveCmd() *cobra.Command {
	var undo bool

	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a page, or restore it with --undo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.ws.ArchivePage(args[0], !undo); err != nil {
				return err
			}
			if undo {
				fmt.Fprintf(cmd.OutOrStdout(), "Unarchived page %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Archived page %s\n", args[0])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&undo, "undo", false, "Unarchive instead")
	return cmd
}

func newPageDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a page and every page below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			p, err := s.ws.Page(args[0])
			if err != nil {
				return err
			}
			if !force {
				ok, err := confirm(cmd, fmt.Sprintf("Delete page '%s' and its sub-pages? (y/N) ", p.Title))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
			}

			removed, err := s.ws.DeletePage(p.ID)
			if err != nil {
				return err
			}
			if len(removed) == 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted page '%s'\n", p.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted page '%s' and %d sub-pages\n", p.Title, len(removed)-1)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")
	return cmd
}

func newPageMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> [over-id]",
		Short: "Drop a page onto another page",
		Long: "Drop a page onto another page the way the sidebar does. Dropping a root page onto\n" +
			"a child of itself moves it in the flat order only. Without over-id the page becomes\n" +
			"a root page.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.ws.StartDrag(args[0]); err != nil {
				return err
			}
			var over string
			if len(args) == 2 {
				if _, err := s.ws.Page(args[1]); err != nil {
					s.ws.CancelDrag()
					return err
				}
				over = args[1]
			}

			activeID, _ := s.ws.ActiveDrag()
			if !s.ws.EndDrag("", over) {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to move")
				return nil
			}

			moved, err := s.ws.Page(activeID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved '%s' to %s\n", moved.Title, moved.Path)
			return nil
		},
	}
}

func newPageRepositionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reposition <id> <index>",
		Short: "Move a page to an index in the flat page order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index %q: %w", args[1], err)
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.ws.Reposition(args[0], index); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Repositioned page %s\n", args[0])
			return nil
		},
	}
}

// pageFilter narrows a page listing.
type pageFilter struct {
	sectionID       string
	inbox           bool
	roots           bool
	includeArchived bool
}

func (f pageFilter) apply(ws *usecase.Workspace) []model.Page {
	var pages []model.Page
	switch {
	case f.inbox:
		pages = ws.Inbox()
	case f.roots:
		pages = ws.AllPages()
	default:
		pages = ws.Pages()
	}

	out := pages[:0:0]
	for _, p := range pages {
		if f.sectionID != "" && p.SectionID != f.sectionID {
			continue
		}
		if p.Archived && !f.includeArchived {
			continue
		}
		out = append(out, p)
	}
	return out
}

func newPageListCmd() *cobra.Command {
	var (
		filter pageFilter
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pages in flat order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			if filter.inbox && filter.roots {
				return fmt.Errorf("--inbox and --roots cannot be used together")
			}
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return outputPages(cmd, s.ws, filter.apply(s.ws), format)
		},
	}

	cmd.Flags().StringVarP(&filter.sectionID, "section", "s", "", "Only pages of this section")
	cmd.Flags().BoolVar(&filter.inbox, "inbox", false, "Only root pages without a section, oldest first")
	cmd.Flags().BoolVar(&filter.roots, "roots", false, "Only root pages, oldest first")
	cmd.Flags().BoolVar(&filter.includeArchived, "include-archived", false, "Include archived pages")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func outputPages(cmd *cobra.Command, ws *usecase.Workspace, pages []model.Page, format string) error {
	if format == "json" {
		output := make([]pageOutputEntry, 0, len(pages))
		for _, p := range pages {
			loc, err := ws.LocationOf(p.ID)
			if err != nil {
				return err
			}
			output = append(output, pageEntry(p, location.Format(loc)))
		}
		return outputJSON(cmd, output)
	}

	t := newTable(cmd)
	t.AppendHeader(table.Row{"ID", "Title", "Section", "Level", "Edited"})
	width := titleWidth(41+44+5+19, 5)
	for _, p := range pages {
		title := strings.Repeat("  ", p.Level) + p.Title
		if p.Archived {
			title += " (archived)"
		}
		t.AppendRow(table.Row{p.ID, truncate(title, width), emptyOr(p.SectionID, "-"), p.Level, formatTime(p.EditedDate)})
	}
	t.Render()
	return nil
}
