package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shandysiswandi/gomotor/internal/app"
	"github.com/shandysiswandi/gomotor/internal/pkg/config"
	"github.com/shandysiswandi/gomotor/internal/pkg/migration"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return withMigrator(func(m *migration.Migrator) error {
				if err := m.Up(); err != nil {
					return err
				}
				return logVersion(m)
			})
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return withMigrator(func(m *migration.Migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				return logVersion(m)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return withMigrator(logVersion)
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

// withMigrator reads only database.url, so migrations run before the rest
// of the stack is reachable.
func withMigrator(fn func(*migration.Migrator) error) error {
	cfg, err := config.NewViper(app.ConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	defer func() { _ = cfg.Close() }()

	m, err := migration.New(cfg.GetString("database.url"))
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			slog.Warn("failed to close migrator", "error", err)
		}
	}()

	return fn(m)
}

func logVersion(m *migration.Migrator) error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	slog.Info("schema version", "version", v, "dirty", dirty)
	return nil
}
