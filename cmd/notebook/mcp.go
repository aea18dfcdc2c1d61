package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/notebook-md/notebookmd/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start the Model Context Protocol server for notebook.md on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			server := mcp.NewServer(s.ws, version, slog.Default())
			return server.Run(cmd.Context())
		},
	}

	return cmd
}
