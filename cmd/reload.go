package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReloadFormsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reloadforms",
		Short: "Reload and re-validate the form catalog (operator)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			notify := app.newNotifier(cmd.OutOrStdout())
			if err := app.catalog.Reload(); err != nil {
				notify.Failure("&cFailed to reload forms configuration. Check the logs for details.")
				return err
			}
			notify.Success("&aForms configuration reloaded successfully!")
			return nil
		},
	}
}

func newValidateCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the form catalog without applying changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.catalog.Reload(); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "catalog valid: %d forms\n", len(app.catalog.Forms()))
			return err
		},
	}
}
