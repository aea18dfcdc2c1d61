package main

import (
	"crypto/sha256"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/notebook-md/notebookmd/internal/model"
	"github.com/notebook-md/notebookmd/internal/store"
)

func newPageEditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit page content with $EDITOR",
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
			currentContent := []byte(p.Data)

			tempDir, err := os.MkdirTemp("", "notebook-edit-")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tempDir)

			tempFile := filepath.Join(tempDir, p.ID+".json")
			if err := os.WriteFile(tempFile, currentContent, 0600); err != nil {
				return err
			}

			editor := os.Getenv("EDITOR")
			if editor == "" {
				editor = os.Getenv("VISUAL")
			}
			if editor == "" {
				editor = "vi"
			}

			editorCmd := exec.CommandContext(cmd.Context(), editor, tempFile)
			editorCmd.Stdin = os.Stdin
			editorCmd.Stdout = os.Stdout
			editorCmd.Stderr = os.Stderr
			if err := editorCmd.Run(); err != nil {
				return fmt.Errorf("editor exited with error: %w", err)
			}

			editedContent, err := os.ReadFile(tempFile)
			if err != nil {
				return err
			}
			if sha256.Sum256(currentContent) == sha256.Sum256(editedContent) {
				fmt.Fprintln(cmd.OutOrStdout(), "No changes made")
				return nil
			}

			data := model.Content(editedContent)
			if _, err := s.ws.UpdatePage(p.ID, store.PagePatch{Data: &data}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Page updated")
			return nil
		},
	}
}
