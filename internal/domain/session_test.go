package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func surveyForm() Form {
	return Form{
		Key:     "survey",
		Name:    "survey",
		Command: "survey",
		Questions: []Question{
			{ID: "1", Text: "What is your name?"},
			{ID: "2", Text: "How old are you?"},
		},
	}
}

func TestSessionStartsAtFirstQuestion(t *testing.T) {
	t.Parallel()

	session := NewFormSession(uuid.New(), "Bob", surveyForm())

	assert.Equal(t, 0, session.Cursor())
	require.True(t, session.HasNextQuestion())

	question, err := session.CurrentQuestion()
	require.NoError(t, err)
	assert.Equal(t, "1", question.ID)
	assert.Equal(t, "What is your name?", question.Text)
}

func TestSessionCursorAdvancesByExactlyOnePerAnswer(t *testing.T) {
	t.Parallel()

	session := NewFormSession(uuid.New(), "Bob", surveyForm())

	require.NoError(t, session.RecordAnswer("Bobby"))
	assert.Equal(t, 1, session.Cursor())

	question, err := session.CurrentQuestion()
	require.NoError(t, err)
	assert.Equal(t, "2", question.ID)

	require.NoError(t, session.RecordAnswer("30"))
	assert.Equal(t, 2, session.Cursor())
	assert.False(t, session.HasNextQuestion())
}

func TestCompletedSessionRefusesFurtherTransitions(t *testing.T) {
	t.Parallel()

	session := NewFormSession(uuid.New(), "Bob", surveyForm())
	require.NoError(t, session.RecordAnswer("Bobby"))
	require.NoError(t, session.RecordAnswer("30"))

	_, err := session.CurrentQuestion()
	require.ErrorIs(t, err, ErrSessionComplete)

	err = session.RecordAnswer("extra")
	require.ErrorIs(t, err, ErrSessionComplete)
	assert.Equal(t, 2, session.Cursor())
}

func TestSessionAnswersAreKeyedByQuestionID(t *testing.T) {
	t.Parallel()

	session := NewFormSession(uuid.New(), "Bob", surveyForm())
	require.NoError(t, session.RecordAnswer("Bobby"))
	require.NoError(t, session.RecordAnswer("30"))

	answer, ok := session.AnswerTo("1")
	require.True(t, ok)
	assert.Equal(t, "Bobby", answer)

	assert.Equal(t, map[string]string{"1": "Bobby", "2": "30"}, session.Answers())
}

func TestSessionAnswersReturnsACopy(t *testing.T) {
	t.Parallel()

	session := NewFormSession(uuid.New(), "Bob", surveyForm())
	require.NoError(t, session.RecordAnswer("Bobby"))

	answers := session.Answers()
	answers["1"] = "tampered"

	original, ok := session.AnswerTo("1")
	require.True(t, ok)
	assert.Equal(t, "Bobby", original)
}
