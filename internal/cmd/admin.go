package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gomotor/internal/app"
	"github.com/shandysiswandi/gomotor/internal/identity/usecase"
	"github.com/spf13/cobra"
)

var errIdentityDisabled = errors.New("identity module is disabled")

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage back office accounts",
	}

	var in usecase.CreateAdminInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account and assign its role",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			application := app.New(app.OneShot())
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				application.Stop(ctx)
			}()

			uc := application.Identity()
			if uc == nil {
				return errIdentityDisabled
			}

			admin, err := uc.CreateAdmin(c.Context(), in)
			if err != nil {
				return err
			}

			slog.Info("admin created", "admin_id", admin.ID, "email", admin.Email, "role", in.Role)
			return nil
		},
	}
	create.Flags().StringVar(&in.Email, "email", "", "login email")
	create.Flags().StringVar(&in.FullName, "name", "", "display name")
	create.Flags().StringVar(&in.Password, "password", "", "initial password")
	create.Flags().StringVar(&in.Role, "role", "admin", "admin or sales")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
