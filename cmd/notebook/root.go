package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/notebook-md/notebookmd/internal/application"
	"github.com/notebook-md/notebookmd/internal/config"
	"github.com/notebook-md/notebookmd/internal/database"
	"github.com/notebook-md/notebookmd/internal/logging"
	"github.com/notebook-md/notebookmd/internal/usecase"
)

// settings is loaded before every command runs.
var settings = config.Defaults()

var noColor bool

func newRootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "notebook",
		Short:         "notebook.md - notebooks, sections and nested pages",
		Long:          "notebook.md keeps notebooks of sections holding trees of pages, stored in a local SQLite database.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				loaded.LogLevel = logLevel
			}
			if _, err := logging.Setup(loaded.LogLevel); err != nil {
				return err
			}
			settings = loaded
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colour swatches in listings")

	cmd.AddCommand(newNotebookCmd())
	cmd.AddCommand(newSectionCmd())
	cmd.AddCommand(newPageCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newOpenCmd())
	cmd.AddCommand(newBackupCmd())
	cmd.AddCommand(newBackupsCmd())
	cmd.AddCommand(newRestoreCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newResetCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// session is one opened database with the stores loaded from it.
type session struct {
	dbCtx *database.Context
	app   *application.App
	ws    *usecase.Workspace
	maint *usecase.Maintenance
}

func openSession(cmd *cobra.Command) (*session, error) {
	dbCtx, err := database.CreateDatabase("")
	if err != nil {
		return nil, err
	}

	app, err := application.Open(cmd.Context(), dbCtx, slog.Default())
	if err != nil {
		_ = database.CloseDatabase(dbCtx)
		return nil, err
	}

	return &session{
		dbCtx: dbCtx,
		app:   app,
		ws:    usecase.NewWorkspace(app, settings.User),
		maint: usecase.NewMaintenance(app, dbCtx),
	}, nil
}

func (s *session) Close() {
	_ = database.CloseDatabase(s.dbCtx)
}
