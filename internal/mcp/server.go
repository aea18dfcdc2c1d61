// Package mcp exposes the notebook commands as MCP tools over stdio.
package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/notebook-md/notebookmd/internal/usecase"
)

// Server wraps the MCP server with notebook-specific tools.
type Server struct {
	server *mcp.Server
	ws     *usecase.Workspace
	logger *slog.Logger
}

// NewServer creates a server whose tools act on ws.
func NewServer(ws *usecase.Workspace, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "notebook.md",
		Version: version,
	}, nil)

	s := &Server{
		server: mcpServer,
		ws:     ws,
		logger: logger,
	}
	s.registerTools()
	return s
}

// Run serves over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "notebook_create",
		Description: "Create a notebook",
	}, s.handleNotebookCreate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "notebook_list",
		Description: "List all notebooks",
	}, s.handleNotebookList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "notebook_delete",
		Description: "Delete a notebook together with its sections and their pages",
	}, s.handleNotebookDelete)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "section_create",
		Description: "Create a section inside a notebook",
	}, s.handleSectionCreate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "section_list",
		Description: "List the sections of a notebook",
	}, s.handleSectionList)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "section_delete",
		Description: "Delete a section and its pages",
	}, s.handleSectionDelete)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_create",
		Description: "Create a page in a section, under a parent page, or in the inbox",
	}, s.handlePageCreate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_get",
		Description: "Get a page with its content",
	}, s.handlePageGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_update",
		Description: "Change the title, content or archived flag of a page",
	}, s.handlePageUpdate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_delete",
		Description: "Delete a page and every page below it",
	}, s.handlePageDelete)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_reorder",
		Description: "Drag a page onto another page, or onto nothing to make it a root page",
	}, s.handlePageReorder)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_drag_start",
		Description: "Pick up a page; a later page_reorder without activeId drops it",
	}, s.handlePageDragStart)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_drag_status",
		Description: "Report the page currently being dragged, if any",
	}, s.handlePageDragStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_drag_cancel",
		Description: "Put down the dragged page without moving it",
	}, s.handlePageDragCancel)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_search",
		Description: "Search page titles; an empty query returns the most recently edited pages",
	}, s.handlePageSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "page_tree",
		Description: "Show the page tree of a section, or of the inbox when no section is given",
	}, s.handlePageTree)
}
