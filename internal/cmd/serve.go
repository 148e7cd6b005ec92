package cmd

import (
	"context"
	"time"

	"github.com/shandysiswandi/gomotor/internal/app"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and message consumers",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(*cobra.Command, []string) error {
	application := app.New()
	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	application.Stop(ctx)

	return nil
}
