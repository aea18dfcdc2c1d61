package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/notebook-md/notebookmd/internal/location"
	"github.com/notebook-md/notebookmd/internal/model"
	"github.com/notebook-md/notebookmd/internal/store"
	"github.com/notebook-md/notebookmd/internal/usecase"
)

func (s *Server) handleNotebookCreate(ctx context.Context, req *mcp.CallToolRequest, input NotebookCreateInput) (*mcp.CallToolResult, NotebookOutput, error) {
	nb, err := s.ws.CreateNotebook(usecase.NotebookInput{
		Name:        input.Name,
		Description: deref(input.Description),
		Colour:      deref(input.Colour),
	})
	if err != nil {
		return nil, NotebookOutput{}, fmt.Errorf("failed to create notebook: %w", err)
	}
	return nil, notebookOutput(nb), nil
}

func (s *Server) handleNotebookList(ctx context.Context, req *mcp.CallToolRequest, input NotebookListInput) (*mcp.CallToolResult, NotebookListOutput, error) {
	notebooks := s.ws.Notebooks()
	out := NotebookListOutput{Notebooks: make([]NotebookOutput, 0, len(notebooks))}
	for _, nb := range notebooks {
		out.Notebooks = append(out.Notebooks, notebookOutput(nb))
	}
	return nil, out, nil
}

func (s *Server) handleNotebookDelete(ctx context.Context, req *mcp.CallToolRequest, input NotebookDeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	removed, err := s.ws.DeleteNotebook(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete notebook: %w", err)
	}
	return nil, DeleteOutput{
		Message:  fmt.Sprintf("Deleted notebook %s with %d section(s) and %d page(s)", input.ID, len(removed.Sections), len(removed.Pages)),
		Sections: removed.Sections,
		Pages:    removed.Pages,
	}, nil
}

func (s *Server) handleSectionCreate(ctx context.Context, req *mcp.CallToolRequest, input SectionCreateInput) (*mcp.CallToolResult, SectionOutput, error) {
	sec, err := s.ws.CreateSection(usecase.SectionInput{
		NotebookID: input.NotebookID,
		Name:       input.Name,
		Color:      deref(input.Color),
	})
	if err != nil {
		return nil, SectionOutput{}, fmt.Errorf("failed to create section: %w", err)
	}
	return nil, sectionOutput(sec), nil
}

func (s *Server) handleSectionList(ctx context.Context, req *mcp.CallToolRequest, input SectionListInput) (*mcp.CallToolResult, SectionListOutput, error) {
	sections, err := s.ws.Sections(input.NotebookID)
	if err != nil {
		return nil, SectionListOutput{}, fmt.Errorf("failed to list sections: %w", err)
	}
	out := SectionListOutput{Sections: make([]SectionOutput, 0, len(sections))}
	for _, sec := range sections {
		out.Sections = append(out.Sections, sectionOutput(sec))
	}
	return nil, out, nil
}

func (s *Server) handleSectionDelete(ctx context.Context, req *mcp.CallToolRequest, input SectionDeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	pages, err := s.ws.DeleteSection(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete section: %w", err)
	}
	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted section %s with %d page(s)", input.ID, len(pages)),
		Pages:   pages,
	}, nil
}

func (s *Server) handlePageCreate(ctx context.Context, req *mcp.CallToolRequest, input PageCreateInput) (*mcp.CallToolResult, PageOutput, error) {
	p, err := s.ws.CreatePage(usecase.PageInput{
		SectionID:    deref(input.SectionID),
		ParentPageID: deref(input.ParentPageID),
		Title:        input.Title,
		Data:         model.Content(deref(input.Data)),
	})
	if err != nil {
		return nil, PageOutput{}, fmt.Errorf("failed to create page: %w", err)
	}
	return nil, s.pageWithLocation(p, false), nil
}

func (s *Server) handlePageGet(ctx context.Context, req *mcp.CallToolRequest, input PageGetInput) (*mcp.CallToolResult, PageOutput, error) {
	p, err := s.ws.Page(input.ID)
	if err != nil {
		return nil, PageOutput{}, fmt.Errorf("failed to get page: %w", err)
	}
	return nil, s.pageWithLocation(p, true), nil
}

func (s *Server) handlePageUpdate(ctx context.Context, req *mcp.CallToolRequest, input PageUpdateInput) (*mcp.CallToolResult, PageOutput, error) {
	patch := store.PagePatch{Title: input.Title, Archived: input.Archived}
	if input.Data != nil {
		data := model.Content(*input.Data)
		patch.Data = &data
	}
	p, err := s.ws.UpdatePage(input.ID, patch)
	if err != nil {
		return nil, PageOutput{}, fmt.Errorf("failed to update page: %w", err)
	}
	return nil, s.pageWithLocation(p, false), nil
}

func (s *Server) handlePageDelete(ctx context.Context, req *mcp.CallToolRequest, input PageDeleteInput) (*mcp.CallToolResult, DeleteOutput, error) {
	removed, err := s.ws.DeletePage(input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete page: %w", err)
	}
	return nil, DeleteOutput{
		Message: fmt.Sprintf("Deleted %d page(s)", len(removed)),
		Pages:   removed,
	}, nil
}

func (s *Server) handlePageReorder(ctx context.Context, req *mcp.CallToolRequest, input PageReorderInput) (*mcp.CallToolResult, PageReorderOutput, error) {
	activeID := input.ActiveID
	if activeID == "" {
		id, ok := s.ws.ActiveDrag()
		if !ok {
			return nil, PageReorderOutput{}, fmt.Errorf("failed to reorder page: no activeId given and no drag in progress")
		}
		activeID = id
	}
	changed := s.ws.EndDrag(activeID, input.OverID)
	p, err := s.ws.Page(activeID)
	if err != nil {
		return nil, PageReorderOutput{}, fmt.Errorf("failed to reorder page: %w", err)
	}
	s.logger.Debug("page reordered", "active", activeID, "over", input.OverID, "changed", changed)
	return nil, PageReorderOutput{Changed: changed, Page: s.pageWithLocation(p, false)}, nil
}

func (s *Server) handlePageDragStart(ctx context.Context, req *mcp.CallToolRequest, input PageDragStartInput) (*mcp.CallToolResult, PageDragOutput, error) {
	if err := s.ws.StartDrag(input.ID); err != nil {
		return nil, PageDragOutput{}, fmt.Errorf("failed to start drag: %w", err)
	}
	return nil, s.dragOutput(), nil
}

func (s *Server) handlePageDragStatus(ctx context.Context, req *mcp.CallToolRequest, input PageDragStatusInput) (*mcp.CallToolResult, PageDragOutput, error) {
	return nil, s.dragOutput(), nil
}

func (s *Server) handlePageDragCancel(ctx context.Context, req *mcp.CallToolRequest, input PageDragStatusInput) (*mcp.CallToolResult, PageDragOutput, error) {
	s.ws.CancelDrag()
	return nil, s.dragOutput(), nil
}

func (s *Server) dragOutput() PageDragOutput {
	id, ok := s.ws.ActiveDrag()
	if !ok {
		return PageDragOutput{}
	}
	p, err := s.ws.Page(id)
	if err != nil {
		return PageDragOutput{}
	}
	out := s.pageWithLocation(p, false)
	return PageDragOutput{Active: true, Page: &out}
}

func (s *Server) handlePageSearch(ctx context.Context, req *mcp.CallToolRequest, input PageSearchInput) (*mcp.CallToolResult, PageListOutput, error) {
	pages := s.ws.Search(input.Query)
	out := PageListOutput{Pages: make([]PageOutput, 0, len(pages))}
	for _, p := range pages {
		out.Pages = append(out.Pages, s.pageWithLocation(p, false))
	}
	return nil, out, nil
}

func (s *Server) handlePageTree(ctx context.Context, req *mcp.CallToolRequest, input PageTreeInput) (*mcp.CallToolResult, PageTreeOutput, error) {
	tree, err := s.ws.Tree(input.SectionID)
	if err != nil {
		return nil, PageTreeOutput{}, fmt.Errorf("failed to build page tree: %w", err)
	}
	out := PageTreeOutput{Entries: []TreeEntry{}}
	var walk func(nodes []store.Node)
	walk = func(nodes []store.Node) {
		for _, n := range nodes {
			out.Entries = append(out.Entries, TreeEntry{
				ID:           n.Page.ID,
				Title:        n.Page.Title,
				ParentPageID: n.Page.ParentPageID,
				Level:        n.Page.Level,
				Archived:     n.Page.Archived,
			})
			walk(n.Children)
		}
	}
	walk(tree)
	return nil, out, nil
}

func (s *Server) pageWithLocation(p model.Page, withData bool) PageOutput {
	out := pageOutput(p, withData)
	if loc, err := s.ws.LocationOf(p.ID); err == nil {
		out.Location = location.Format(loc)
	}
	return out
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
