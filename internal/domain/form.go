package domain

// Question is a single prompt inside a form. The id is the key the answer
// is stored under, unique within the owning form.
type Question struct {
	ID   string
	Text string
}

// Form is an immutable, validated description of an interview: an ordered
// question list plus the policy flags that govern it. Forms are produced by
// the catalog loader and shared read-only between sessions.
type Form struct {
	// Key identifies the form inside the catalog.
	Key string
	// Name is the human-readable name and the key answers are persisted
	// under. It survives catalog key renames, so it must never be empty.
	Name string
	// Command is the token that starts the form from the command surface.
	Command string
	// AllowMultipleResponses permits a player to complete the form more
	// than once. When false a second attempt is rejected.
	AllowMultipleResponses bool
	// ReturnAnswers echoes the collected answers back on completion.
	ReturnAnswers bool
	Questions     []Question
}

// QuestionByID returns the question with the given id, if present.
func (f Form) QuestionByID(id string) (Question, bool) {
	for _, q := range f.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}
