package domain

import "github.com/google/uuid"

// FormSession tracks one player's progress through one form attempt. The
// cursor is the only state: it starts at 0, advances by exactly one per
// recorded answer, and the session is complete once it reaches the question
// count. A completed session is never reused; the owning engine persists the
// answers and discards it.
type FormSession struct {
	playerID   uuid.UUID
	playerName string
	form       Form
	answers    map[string]string
	cursor     int
}

// NewFormSession creates a session positioned at the first question.
func NewFormSession(playerID uuid.UUID, playerName string, form Form) *FormSession {
	return &FormSession{
		playerID:   playerID,
		playerName: playerName,
		form:       form,
		answers:    make(map[string]string, len(form.Questions)),
	}
}

func (s *FormSession) PlayerID() uuid.UUID { return s.playerID }

func (s *FormSession) PlayerName() string { return s.playerName }

func (s *FormSession) Form() Form { return s.form }

// Cursor is the index of the question currently awaiting an answer. It
// equals len(Form().Questions) once the session is complete.
func (s *FormSession) Cursor() int { return s.cursor }

// HasNextQuestion reports whether a question is still awaiting an answer.
// Callers must check it before CurrentQuestion or RecordAnswer.
func (s *FormSession) HasNextQuestion() bool {
	return s.cursor < len(s.form.Questions)
}

// CurrentQuestion returns the question awaiting an answer. It returns
// ErrSessionComplete once every question has been answered; it never
// returns stale data.
func (s *FormSession) CurrentQuestion() (Question, error) {
	if !s.HasNextQuestion() {
		return Question{}, ErrSessionComplete
	}
	return s.form.Questions[s.cursor], nil
}

// RecordAnswer stores the answer under the current question's id and
// advances the cursor. It is the only mutating transition; there is no way
// back or skip.
func (s *FormSession) RecordAnswer(answer string) error {
	question, err := s.CurrentQuestion()
	if err != nil {
		return err
	}
	s.answers[question.ID] = answer
	s.cursor++
	return nil
}

// AnswerTo returns the recorded answer for a question id.
func (s *FormSession) AnswerTo(questionID string) (string, bool) {
	answer, ok := s.answers[questionID]
	return answer, ok
}

// Answers returns a copy of the recorded answers keyed by question id.
func (s *FormSession) Answers() map[string]string {
	out := make(map[string]string, len(s.answers))
	for id, answer := range s.answers {
		out[id] = answer
	}
	return out
}
