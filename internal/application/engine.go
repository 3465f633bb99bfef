// Package application orchestrates form sessions: the engine coordinates
// the session registry, the answer store, and the user-facing notifier.
package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jumpypanter/serverforms/internal/domain"
	"github.com/jumpypanter/serverforms/internal/ports"
)

// Engine walks players through forms. All state lives in the injected
// registry; the engine itself only holds collaborators.
type Engine struct {
	registry *SessionRegistry
	answers  ports.AnswerRepository
	messages ports.MessageSource
	logger   *slog.Logger
}

func NewEngine(registry *SessionRegistry, answers ports.AnswerRepository, messages ports.MessageSource, logger *slog.Logger) *Engine {
	return &Engine{
		registry: registry,
		answers:  answers,
		messages: messages,
		logger:   logger,
	}
}

// Registry exposes the session registry for surfaces that need to inspect
// active sessions.
func (e *Engine) Registry() *SessionRegistry { return e.registry }

// Start begins a form session for the player and prompts the first
// question. The duplicate check runs before the busy check, matching the
// original command flow: a player who already completed a single-response
// form is told so even while another of their sessions is active.
func (e *Engine) Start(ctx context.Context, playerID uuid.UUID, playerName string, form domain.Form, notify ports.Notifier) error {
	if form.Name == "" {
		notify.Failure("&cThe form is missing a 'name' field.")
		e.logger.Error("form definition has no name", slog.String("form_key", form.Key))
		return domain.ErrMissingFormName
	}

	if !form.AllowMultipleResponses && e.answers.HasCompleted(ctx, playerID, form.Name) {
		notify.Failure("&cYou have already completed this form!")
		return domain.ErrDuplicateSubmission
	}

	session := domain.NewFormSession(playerID, playerName, form)
	if !session.HasNextQuestion() {
		notify.Failure(e.messages.Message("formError", "&cAn error occurred. Please try again."))
		e.logger.Error("form has no questions", slog.String("form", form.Name))
		return domain.ErrMalformedQuestion
	}

	if !e.registry.TryBegin(playerID, session) {
		notify.Failure("&cYou are already filling out a form!")
		return domain.ErrSessionBusy
	}

	e.logger.Info("form session started",
		slog.String("player", playerName),
		slog.String("player_id", playerID.String()),
		slog.String("form", form.Name),
	)
	e.askNextQuestion(session, notify)
	return nil
}

// SubmitAnswer records the player's answer to the current question and
// either prompts the next question or completes the session: unregister,
// persist, confirm, and optionally echo the answers in question order.
func (e *Engine) SubmitAnswer(ctx context.Context, playerID uuid.UUID, answer string, notify ports.Notifier) error {
	session, ok := e.registry.Active(playerID)
	if !ok {
		notify.Failure("&cYou are not currently filling out a form.")
		return domain.ErrNoActiveSession
	}

	question, err := session.CurrentQuestion()
	if err != nil {
		notify.Failure(e.messages.Message("formError", "&cAn error occurred. Please try again."))
		return err
	}
	if question.ID == "" {
		// Session stays active so a corrected catalog reload can rescue it.
		notify.Failure("&cThe current question is missing an 'id' field.")
		return domain.ErrMalformedQuestion
	}

	if err := session.RecordAnswer(answer); err != nil {
		return err
	}

	if session.HasNextQuestion() {
		e.askNextQuestion(session, notify)
		return nil
	}
	return e.complete(ctx, session, notify)
}

func (e *Engine) askNextQuestion(session *domain.FormSession, notify ports.Notifier) {
	question, err := session.CurrentQuestion()
	if err != nil {
		return
	}
	notify.Success("&eNext question: &f" + question.Text)
}

func (e *Engine) complete(ctx context.Context, session *domain.FormSession, notify ports.Notifier) error {
	form := session.Form()
	e.registry.End(session.PlayerID())

	if err := e.answers.Save(ctx, session.PlayerID(), session.PlayerName(), form.Name, session.Answers()); err != nil {
		e.logger.Error("failed to save form answers",
			slog.String("player_id", session.PlayerID().String()),
			slog.String("form", form.Name),
			slog.Any("error", err),
		)
		notify.Failure(e.messages.Message("formError", "&cAn error occurred. Please try again."))
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	e.logger.Info("form session completed",
		slog.String("player", session.PlayerName()),
		slog.String("form", form.Name),
	)
	notify.Success(e.messages.Message("formSuccess", "&aForm completed!"))

	if form.ReturnAnswers {
		// Echo follows the form's question order, not map iteration.
		for _, question := range form.Questions {
			if answer, ok := session.AnswerTo(question.ID); ok {
				notify.Success("&b" + question.ID + ": &f" + answer)
			}
		}
	}
	return nil
}
