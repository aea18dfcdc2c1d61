package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/notebook-md/notebookmd/internal/config"
	"github.com/notebook-md/notebookmd/internal/database"
)

func newBackupCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write every store to a new snapshot directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var descPtr *string
			if strings.TrimSpace(description) != "" {
				d := description
				descPtr = &d
			}
			record, err := s.maint.Backup(cmd.Context(), descPtr)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup %d written to %s\n", record.ID, record.FilePath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Add description metadata")
	return cmd
}

type backupOutputEntry struct {
	ID          int64   `json:"id"`
	FilePath    string  `json:"filePath"`
	Hash        string  `json:"hash"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

func newBackupsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List recorded backups, newest first",
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

			records, err := s.maint.Backups(cmd.Context())
			if err != nil {
				return err
			}
			if format == "json" {
				output := make([]backupOutputEntry, 0, len(records))
				for _, r := range records {
					output = append(output, backupOutputEntry{
						ID:          r.ID,
						FilePath:    r.FilePath,
						Hash:        r.Hash,
						Description: r.Description,
						CreatedAt:   r.CreatedAt.Format(time.RFC3339),
					})
				}
				return outputJSON(cmd, output)
			}
			outputBackupTable(cmd, records)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	cmd.AddCommand(newBackupsForgetCmd())
	return cmd
}

func newBackupsForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget <backup-id>",
		Short: "Drop a backup from the index and delete its snapshot directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid backup id %q", args[0])
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			record, err := s.maint.ForgetBackup(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Forgot backup %d and removed %s\n", record.ID, record.FilePath)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete every notebook, section, page and backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force {
				ok, err := confirm(cmd, "Delete all notebooks, sections, pages and backups? (y/N) ")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled")
					return nil
				}
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			removed, err := s.maint.Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset complete, %d snapshot(s) removed\n", removed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")
	return cmd
}

func outputBackupTable(cmd *cobra.Command, records []database.BackupRecord) {
	t := newTable(cmd)
	t.AppendHeader(table.Row{"ID", "Created", "Hash", "Description"})
	descWidth := titleWidth(6+19+12, 4)
	for _, r := range records {
		description := ""
		if r.Description != nil {
			description = *r.Description
		}
		t.AppendRow(table.Row{r.ID, formatTime(r.CreatedAt), r.Hash[:min(12, len(r.Hash))], truncate(description, descWidth)})
	}
	t.Render()
}

func newRestoreCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore [backup-id|directory]",
		Short: "Replace all notebooks, sections and pages with a backup",
		Long: "Restore a recorded backup by id after checking its hash, or the latest backup when no\n" +
			"argument is given. A directory argument restores an unrecorded snapshot without a hash check.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				ok, err := confirm(cmd, "Replace all notebooks, sections and pages with the backup? (y/N) ")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Restore cancelled")
					return nil
				}
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			if info, err := os.Stat(arg); arg != "" && err == nil && info.IsDir() {
				if err := s.maint.RestoreDir(cmd.Context(), arg); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Restored %s\n", arg)
				return nil
			}

			var id int64
			if arg != "" {
				parsed, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("%q is neither a backup id nor a directory", arg)
				}
				id = parsed
			}
			record, err := s.maint.Restore(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored backup %d from %s\n", record.ID, record.FilePath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")
	return cmd
}

// errUnhealthy makes doctor exit non-zero when it finds problems.
var errUnhealthy = errors.New("problems found")

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the database and every hierarchy invariant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			report, err := s.maint.Doctor(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database:  %s\n", config.GetDBPath())
			fmt.Fprintf(out, "Schema:    v%d", report.SchemaVersion)
			if report.Dirty {
				fmt.Fprint(out, " (dirty)")
			}
			fmt.Fprintln(out)

			t := newTable(cmd)
			t.AppendHeader(table.Row{"Store", "Bytes", "Updated"})
			for _, b := range report.Blobs {
				t.AppendRow(table.Row{b.Name, len(b.Payload), formatTime(b.UpdatedAt)})
			}
			t.Render()

			if len(report.Unindexed) > 0 {
				fmt.Fprintln(out, "Snapshot directories missing from the backups index:")
				for _, dir := range report.Unindexed {
					fmt.Fprintf(out, "  %s\n", dir)
				}
			}

			if report.Healthy() {
				fmt.Fprintln(out, "No problems found")
				return nil
			}
			problems := report.Problems
			if report.Dirty {
				problems = append(problems, "a schema migration did not complete")
			}
			for _, p := range problems {
				fmt.Fprintf(out, "- %s\n", p)
			}
			return fmt.Errorf("%d %w", len(problems), errUnhealthy)
		},
	}
}
