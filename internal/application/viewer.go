package application

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jumpypanter/serverforms/internal/catalog"
	"github.com/jumpypanter/serverforms/internal/domain"
	"github.com/jumpypanter/serverforms/internal/ports"
)

// Viewer reads stored answers directly from the answer store, bypassing the
// engine. It backs the operator-facing view command.
type Viewer struct {
	answers  ports.AnswerRepository
	resolver ports.IdentityResolver
	messages ports.MessageSource
	logger   *slog.Logger
}

func NewViewer(answers ports.AnswerRepository, resolver ports.IdentityResolver, messages ports.MessageSource, logger *slog.Logger) *Viewer {
	return &Viewer{
		answers:  answers,
		resolver: resolver,
		messages: messages,
		logger:   logger,
	}
}

// ViewAnswers displays one form's stored answers for a player. An empty
// formName selects the player's most recently completed form.
func (v *Viewer) ViewAnswers(ctx context.Context, playerName, formName string, notify ports.Notifier) error {
	playerID, err := v.resolver.Lookup(ctx, playerName)
	if err != nil {
		notify.Failure(catalog.Expand(
			v.messages.Message("playerNotFound", "&cPlayer '{player}' does not exist or has never joined the server."),
			"player", playerName,
		))
		return err
	}

	record, err := v.answers.Record(ctx, playerID)
	if err != nil {
		if errors.Is(err, domain.ErrNoResponses) {
			notify.Failure(catalog.Expand(
				v.messages.Message("noFormsFound", "&cNo forms found for player: {player}."),
				"player", playerName,
			))
			return err
		}
		v.logger.Error("failed to read answer record",
			slog.String("player", playerName),
			slog.Any("error", err),
		)
		notify.Failure(v.messages.Message("readError", "&cAn error occurred while reading the form file."))
		return err
	}

	if formName == "" {
		formName, _ = record.LatestFormName()
	}
	answers, ok := record.Answers(formName)
	if !ok {
		notify.Failure(catalog.Expand(
			v.messages.Message("formNotFound", "&cForm '{form}' not found for player: {player}."),
			"form", formName,
			"player", playerName,
		))
		return domain.ErrFormNotFound
	}

	notify.Success(catalog.Expand(
		v.messages.Message("viewingForm", "&aViewing form: {form} for player: {player}."),
		"form", formName,
		"player", playerName,
	))
	for _, questionID := range sortedKeys(answers) {
		notify.Success("&b" + questionID + ": &f" + answers[questionID])
	}
	return nil
}

// ListRespondents returns the display names of every player with a stored
// record, for interactive suggestion.
func (v *Viewer) ListRespondents(ctx context.Context) ([]string, error) {
	return v.answers.ListPlayerNames(ctx)
}
