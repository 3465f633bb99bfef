package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAnswerCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "answer <response...>",
		Short: "Answer the current question of your active form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := actingPlayer(cmd)
			if err != nil {
				return err
			}

			playerID, err := app.resolver.Resolve(cmd.Context(), player)
			if err != nil {
				return fmt.Errorf("resolve player identity: %w", err)
			}

			notify := app.newNotifier(cmd.OutOrStdout())
			return app.engine.SubmitAnswer(cmd.Context(), playerID, strings.Join(args, " "), notify)
		},
	}
}
