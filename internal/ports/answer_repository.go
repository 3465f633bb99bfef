package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/jumpypanter/serverforms/internal/domain"
)

// AnswerRepository is the durable store for completed form answers, one
// record per player identity.
type AnswerRepository interface {
	// HasCompleted reports whether the player already has a stored entry
	// for the form. Read failures are treated as "no prior data" so a
	// broken record never locks a player out of a form; implementations
	// log the failure.
	HasCompleted(ctx context.Context, playerID uuid.UUID, formName string) bool

	// Save merges the answers for one form into the player's record,
	// creating the record if absent and preserving every other form's
	// answers. The player's display name is refreshed on every save.
	Save(ctx context.Context, playerID uuid.UUID, playerName, formName string, answers map[string]string) error

	// Record loads the player's full record. Returns
	// domain.ErrNoResponses when the player has never completed a form.
	Record(ctx context.Context, playerID uuid.UUID) (domain.AnswerRecord, error)

	// ListPlayerNames scans all records and returns the stored display
	// names. Used for suggestions, not correctness.
	ListPlayerNames(ctx context.Context) ([]string, error)
}
