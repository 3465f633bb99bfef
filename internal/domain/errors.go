package domain

import "errors"

var (
	ErrFormNotFound        = errors.New("form not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrDuplicateSubmission = errors.New("form already completed")
	ErrSessionBusy         = errors.New("another form session is already active")
	ErrNoActiveSession     = errors.New("no active form session")
	ErrMalformedQuestion   = errors.New("question is missing an id")
	ErrMissingFormName     = errors.New("form is missing a name")
	ErrSessionComplete     = errors.New("form session is already complete")
	ErrNoResponses         = errors.New("no recorded responses")
	ErrPersistence         = errors.New("failed to persist answers")
)
