// Package cmd holds the gomotor command line: the HTTP server, schema
// migrations and admin bootstrap.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the gomotor command tree. Running it without a
// subcommand starts the server.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "gomotor",
		Short:         "Dealership catalog, leads and back office API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newAdminCommand())

	return root
}
