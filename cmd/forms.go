package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jumpypanter/serverforms/internal/catalog"
	"github.com/jumpypanter/serverforms/internal/domain"
	"github.com/spf13/cobra"
)

func newStartFormCmd(app *app, form domain.Form) *cobra.Command {
	return &cobra.Command{
		Use:   form.Command,
		Short: fmt.Sprintf("Start the %q form", form.Name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			player, err := actingPlayer(cmd)
			if err != nil {
				return err
			}

			playerID, err := app.resolver.Resolve(cmd.Context(), player)
			if err != nil {
				return fmt.Errorf("resolve player identity: %w", err)
			}

			// The registered command holds the form key, not the
			// definition: a reload must take effect without
			// re-registering commands.
			current, ok := app.catalog.Form(form.Key)
			if !ok {
				return domain.ErrFormNotFound
			}

			notify := app.newNotifier(cmd.OutOrStdout())
			return app.engine.Start(cmd.Context(), playerID, player, current, notify)
		},
	}
}

func newFormsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "forms",
		Short: "List configured forms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, form := range app.catalog.Forms() {
				policy := "single-response"
				if form.AllowMultipleResponses {
					policy = "multi-response"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t/%s\t%d questions\t%s\n",
					form.Name, form.Command, len(form.Questions), policy)
			}
			return nil
		},
	}
}

func newCreateFormCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "createform <name> <allowMultipleResponses>",
		Short: "Create a new empty form (operator)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			allowMultiple, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("allowMultipleResponses must be true or false: %w", err)
			}

			notify := app.newNotifier(cmd.OutOrStdout())
			if err := app.catalog.CreateForm(args[0], allowMultiple); err != nil {
				notify.Failure(app.catalog.Message("formExists", "&cA form with this name already exists."))
				return err
			}

			notify.Success(catalog.Expand(
				app.catalog.Message("formCreated", "&aForm '{form}' created successfully!"),
				"form", args[0],
			))
			return nil
		},
	}
}

func newAddQuestionCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:               "addquestion <form> <questionId> <text...>",
		Short:             "Append a question to a form (operator)",
		Args:              cobra.MinimumNArgs(3),
		ValidArgsFunction: suggestFormKeys(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			formKey, questionID := args[0], args[1]
			text := strings.Join(args[2:], " ")

			notify := app.newNotifier(cmd.OutOrStdout())
			if err := app.catalog.AddQuestion(formKey, questionID, text); err != nil {
				notify.Failure(addQuestionFailureMessage(app, formKey, questionID, err))
				return err
			}

			notify.Success(catalog.Expand(
				app.catalog.Message("questionAdded", "&aQuestion added successfully to form '{form}'."),
				"form", formKey,
			))
			return nil
		},
	}
}

func newRemoveQuestionCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:               "removequestion <form> <questionId>",
		Short:             "Remove a question from a form (operator)",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: suggestFormKeys(app),
		RunE: func(cmd *cobra.Command, args []string) error {
			formKey, questionID := args[0], args[1]

			notify := app.newNotifier(cmd.OutOrStdout())
			if err := app.catalog.RemoveQuestion(formKey, questionID); err != nil {
				notify.Failure(removeQuestionFailureMessage(app, formKey, questionID, err))
				return err
			}

			notify.Success(catalog.Expand(
				app.catalog.Message("questionRemoved", "&aQuestion removed successfully from form '{form}'."),
				"form", formKey,
			))
			return nil
		},
	}
}

func addQuestionFailureMessage(app *app, formKey, questionID string, err error) string {
	if errors.Is(err, domain.ErrFormNotFound) {
		return catalog.Expand(
			app.catalog.Message("formNotFound", "&cForm '{form}' does not exist."),
			"form", formKey,
		)
	}
	return catalog.Expand(
		app.catalog.Message("questionExists", "&cA question with ID '{id}' already exists."),
		"id", questionID,
	)
}

func removeQuestionFailureMessage(app *app, formKey, questionID string, err error) string {
	if errors.Is(err, domain.ErrFormNotFound) {
		return catalog.Expand(
			app.catalog.Message("formNotFound", "&cForm '{form}' does not exist."),
			"form", formKey,
		)
	}
	return catalog.Expand(
		app.catalog.Message("questionNotFound", "&cNo question with ID '{id}' found in form '{form}'."),
		"id", questionID,
		"form", formKey,
	)
}

func suggestFormKeys(app *app) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		var keys []string
		for _, form := range app.catalog.Forms() {
			keys = append(keys, form.Key)
		}
		return keys, cobra.ShellCompDirectiveNoFileComp
	}
}
