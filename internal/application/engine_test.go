package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jumpypanter/serverforms/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnswerRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]domain.AnswerRecord
	saveErr error
}

func newFakeAnswerRepo() *fakeAnswerRepo {
	return &fakeAnswerRepo{records: make(map[uuid.UUID]domain.AnswerRecord)}
}

func (f *fakeAnswerRepo) HasCompleted(_ context.Context, playerID uuid.UUID, formName string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[playerID]
	return ok && record.Has(formName)
}

func (f *fakeAnswerRepo) Save(_ context.Context, playerID uuid.UUID, playerName, formName string, answers map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return f.saveErr
	}

	record := f.records[playerID]
	record.PlayerName = playerName
	record.SetAnswers(formName, answers)
	f.records[playerID] = record
	return nil
}

func (f *fakeAnswerRepo) Record(_ context.Context, playerID uuid.UUID) (domain.AnswerRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	record, ok := f.records[playerID]
	if !ok {
		return domain.AnswerRecord{}, domain.ErrNoResponses
	}
	return record, nil
}

func (f *fakeAnswerRepo) ListPlayerNames(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var names []string
	for _, record := range f.records {
		names = append(names, record.PlayerName)
	}
	return names, nil
}

type stubMessages map[string]string

func (m stubMessages) Message(key, fallback string) string {
	if message, ok := m[key]; ok {
		return message
	}
	return fallback
}

type recordingNotifier struct {
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *recordingNotifier) Failure(message string) { n.failures = append(n.failures, message) }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testForm() domain.Form {
	return domain.Form{
		Key:           "single_response_form",
		Name:          "single_response_form",
		Command:       "single_response",
		ReturnAnswers: true,
		Questions: []domain.Question{
			{ID: "1", Text: "What is your name?"},
			{ID: "2", Text: "How old are you?"},
		},
	}
}

func newTestEngine(repo *fakeAnswerRepo) *Engine {
	return NewEngine(NewSessionRegistry(), repo, stubMessages{}, testLogger())
}

func TestStartPromptsFirstQuestion(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(newFakeAnswerRepo())
	notify := &recordingNotifier{}

	err := engine.Start(context.Background(), uuid.New(), "Bob", testForm(), notify)
	require.NoError(t, err)

	require.Len(t, notify.successes, 1)
	assert.Contains(t, notify.successes[0], "What is your name?")
	assert.Equal(t, 1, engine.Registry().Len())
}

func TestStartRejectsSecondSessionForSamePlayer(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(newFakeAnswerRepo())
	playerID := uuid.New()

	require.NoError(t, engine.Start(context.Background(), playerID, "Bob", testForm(), &recordingNotifier{}))

	notify := &recordingNotifier{}
	err := engine.Start(context.Background(), playerID, "Bob", testForm(), notify)
	require.ErrorIs(t, err, domain.ErrSessionBusy)
	require.Len(t, notify.failures, 1)
	assert.Contains(t, notify.failures[0], "already filling out a form")
	assert.Equal(t, 1, engine.Registry().Len())
}

func TestStartRejectsDuplicateSubmission(t *testing.T) {
	t.Parallel()

	repo := newFakeAnswerRepo()
	playerID := uuid.New()
	require.NoError(t, repo.Save(context.Background(), playerID, "Bob", "single_response_form", map[string]string{"1": "Bobby"}))

	engine := newTestEngine(repo)
	notify := &recordingNotifier{}

	err := engine.Start(context.Background(), playerID, "Bob", testForm(), notify)
	require.ErrorIs(t, err, domain.ErrDuplicateSubmission)
	assert.Contains(t, notify.failures[0], "already completed")
	assert.Equal(t, 0, engine.Registry().Len())
}

func TestStartAllowsRepeatForMultiResponseForm(t *testing.T) {
	t.Parallel()

	repo := newFakeAnswerRepo()
	playerID := uuid.New()
	require.NoError(t, repo.Save(context.Background(), playerID, "Bob", "single_response_form", map[string]string{"1": "Bobby"}))

	form := testForm()
	form.AllowMultipleResponses = true

	engine := newTestEngine(repo)
	err := engine.Start(context.Background(), playerID, "Bob", form, &recordingNotifier{})
	require.NoError(t, err)
}

func TestStartRejectsFormWithoutName(t *testing.T) {
	t.Parallel()

	form := testForm()
	form.Name = ""

	engine := newTestEngine(newFakeAnswerRepo())
	notify := &recordingNotifier{}

	err := engine.Start(context.Background(), uuid.New(), "Bob", form, notify)
	require.ErrorIs(t, err, domain.ErrMissingFormName)
	assert.Equal(t, 0, engine.Registry().Len())
}

func TestStartRejectsFormWithoutQuestions(t *testing.T) {
	t.Parallel()

	form := testForm()
	form.Questions = nil

	engine := newTestEngine(newFakeAnswerRepo())
	err := engine.Start(context.Background(), uuid.New(), "Bob", form, &recordingNotifier{})
	require.ErrorIs(t, err, domain.ErrMalformedQuestion)
	assert.Equal(t, 0, engine.Registry().Len())
}

func TestSubmitAnswerWithoutSession(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(newFakeAnswerRepo())
	notify := &recordingNotifier{}

	err := engine.SubmitAnswer(context.Background(), uuid.New(), "hello", notify)
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
	assert.Contains(t, notify.failures[0], "not currently filling out a form")
}

func TestFullInterviewPersistsAndEchoesInQuestionOrder(t *testing.T) {
	t.Parallel()

	repo := newFakeAnswerRepo()
	engine := newTestEngine(repo)
	playerID := uuid.New()
	notify := &recordingNotifier{}

	require.NoError(t, engine.Start(context.Background(), playerID, "Bob", testForm(), notify))
	require.NoError(t, engine.SubmitAnswer(context.Background(), playerID, "foo", notify))
	require.NoError(t, engine.SubmitAnswer(context.Background(), playerID, "bar", notify))

	record, err := repo.Record(context.Background(), playerID)
	require.NoError(t, err)
	assert.Equal(t, "Bob", record.PlayerName)

	answers, ok := record.Answers("single_response_form")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"1": "foo", "2": "bar"}, answers)

	// Session is discarded the instant the last answer lands.
	assert.Equal(t, 0, engine.Registry().Len())
	err = engine.SubmitAnswer(context.Background(), playerID, "extra", &recordingNotifier{})
	require.ErrorIs(t, err, domain.ErrNoActiveSession)

	// Echo lines follow question order: "1" before "2".
	all := strings.Join(notify.successes, "\n")
	assert.Less(t, strings.Index(all, "1: "), strings.Index(all, "2: "))
	assert.Contains(t, all, "foo")
	assert.Contains(t, all, "bar")
}

func TestCompletionSkipsEchoWhenDisabled(t *testing.T) {
	t.Parallel()

	form := testForm()
	form.ReturnAnswers = false
	form.Questions = form.Questions[:1]

	engine := newTestEngine(newFakeAnswerRepo())
	playerID := uuid.New()
	notify := &recordingNotifier{}

	require.NoError(t, engine.Start(context.Background(), playerID, "Bob", form, notify))
	require.NoError(t, engine.SubmitAnswer(context.Background(), playerID, "Bobby", notify))

	all := strings.Join(notify.successes, "\n")
	assert.NotContains(t, all, "1: ")
}

func TestSubmitAnswerRejectsQuestionWithoutID(t *testing.T) {
	t.Parallel()

	form := testForm()
	form.Questions = []domain.Question{{ID: "", Text: "Unkeyed?"}}

	engine := newTestEngine(newFakeAnswerRepo())
	playerID := uuid.New()

	require.NoError(t, engine.Start(context.Background(), playerID, "Bob", form, &recordingNotifier{}))

	err := engine.SubmitAnswer(context.Background(), playerID, "hello", &recordingNotifier{})
	require.ErrorIs(t, err, domain.ErrMalformedQuestion)

	// The session survives a malformed question; it does not corrupt state.
	session, active := engine.Registry().Active(playerID)
	require.True(t, active)
	assert.Equal(t, 0, session.Cursor())
}

func TestSaveFailureSurfacesGenericMessage(t *testing.T) {
	t.Parallel()

	repo := newFakeAnswerRepo()
	repo.saveErr = errors.New("disk full")

	form := testForm()
	form.Questions = form.Questions[:1]

	engine := newTestEngine(repo)
	playerID := uuid.New()
	notify := &recordingNotifier{}

	require.NoError(t, engine.Start(context.Background(), playerID, "Bob", form, notify))

	err := engine.SubmitAnswer(context.Background(), playerID, "Bobby", notify)
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.Len(t, notify.failures, 1)
	assert.Equal(t, 0, engine.Registry().Len())
}

func TestScenarioSingleQuestionForm(t *testing.T) {
	t.Parallel()

	form := domain.Form{
		Key:       "F",
		Name:      "F",
		Command:   "f",
		Questions: []domain.Question{{ID: "1", Text: "Name?"}},
	}

	repo := newFakeAnswerRepo()
	engine := newTestEngine(repo)
	playerID := uuid.New()
	notify := &recordingNotifier{}

	require.NoError(t, engine.Start(context.Background(), playerID, "Bob", form, notify))
	assert.Contains(t, notify.successes[0], "Name?")

	require.NoError(t, engine.SubmitAnswer(context.Background(), playerID, "Bobby", notify))

	record, err := repo.Record(context.Background(), playerID)
	require.NoError(t, err)
	answers, ok := record.Answers("F")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"1": "Bobby"}, answers)

	err = engine.Start(context.Background(), playerID, "Bob", form, &recordingNotifier{})
	require.ErrorIs(t, err, domain.ErrDuplicateSubmission)
}
