package cmd

import (
	"github.com/spf13/cobra"
)

func newViewCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "viewform <player> [form]",
		Short: "View a player's saved form answers",
		Long:  "viewform reads a player's stored answers directly. Without a form name it shows the player's most recently completed form.",
		Args:  cobra.RangeArgs(1, 2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			names, err := app.viewer.ListRespondents(cmd.Context())
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			return names, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			formName := ""
			if len(args) == 2 {
				formName = args[1]
			}

			notify := app.newNotifier(cmd.OutOrStdout())
			return app.viewer.ViewAnswers(cmd.Context(), args[0], formName, notify)
		},
	}
}
