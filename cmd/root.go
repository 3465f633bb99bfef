package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

// reservedCommands are names a form's command token may not shadow.
var reservedCommands = map[string]struct{}{
	"answer":         {},
	"fill":           {},
	"viewform":       {},
	"forms":          {},
	"reloadforms":    {},
	"validate":       {},
	"serve":          {},
	"version":        {},
	"createform":     {},
	"addquestion":    {},
	"removequestion": {},
	"help":           {},
	"completion":     {},
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "serverforms",
		Short:         "Configurable multi-question forms with per-player answer records",
		Long:          "serverforms walks players through configured multi-question forms one question at a time, persists each player's answers, and lets operators author forms and review responses.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringP("player", "p", "", "acting player name (defaults to $SERVERFORMS_PLAYER)")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAnswerCmd(app),
		newFillCmd(app),
		newViewCmd(app),
		newFormsCmd(app),
		newReloadFormsCmd(app),
		newValidateCmd(app),
		newServeCmd(app),
		newCreateFormCmd(app),
		newAddQuestionCmd(app),
		newRemoveQuestionCmd(app),
	)

	// One zero-argument command per configured form, named after its
	// command token, exactly like the original registration pass.
	for _, form := range app.catalog.Forms() {
		if form.Command == "" {
			app.logger.Error("form has no command token, skipping registration", "form", form.Key)
			continue
		}
		if _, reserved := reservedCommands[form.Command]; reserved {
			app.logger.Error("form command token shadows a built-in command, skipping registration", "form", form.Key, "command", form.Command)
			continue
		}
		rootCmd.AddCommand(newStartFormCmd(app, form))
	}

	return rootCmd
}

// actingPlayer resolves the player name the command acts as.
func actingPlayer(cmd *cobra.Command) (string, error) {
	player, err := cmd.Flags().GetString("player")
	if err != nil {
		return "", err
	}
	if player == "" {
		player = os.Getenv(envPrefix + "_PLAYER")
	}
	if player == "" {
		return "", errPlayerRequired
	}
	return player, nil
}
