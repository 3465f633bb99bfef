package catalog

import (
	"fmt"
	"log/slog"

	"github.com/jumpypanter/serverforms/internal/domain"
)

// ValidationError describes a malformed catalog entry. Validation failures
// are fatal to initialization: a form that fails validation must never
// reach the session engine.
type ValidationError struct {
	FormKey string
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form %q: field %q: %s", e.FormKey, e.Field, e.Reason)
}

// validateForms checks every form in the catalog, logging each failure
// before returning the first ValidationError. Pure check, no mutation.
func validateForms(forms map[string]formSchema, logger *slog.Logger) error {
	for _, key := range (fileSchema{Forms: forms}).sortedFormKeys() {
		if err := validateForm(key, forms[key], logger); err != nil {
			return err
		}
	}
	return nil
}

func validateForm(key string, form formSchema, logger *slog.Logger) error {
	fail := func(field, reason string) error {
		err := &ValidationError{FormKey: key, Field: field, Reason: reason}
		logger.Error("invalid form definition",
			slog.String("form", key),
			slog.String("field", field),
			slog.String("reason", reason),
		)
		return err
	}

	if form.Name == "" {
		return fail("name", "missing or empty")
	}
	if domain.ReservedFormName(form.Name) {
		return fail("name", "reserved name")
	}
	if form.Questions == nil {
		return fail("questions", "missing")
	}

	seen := make(map[string]struct{}, len(form.Questions))
	for i, question := range form.Questions {
		if question.ID == "" {
			return fail("questions", fmt.Sprintf("question %d is missing an id", i))
		}
		if _, dup := seen[question.ID]; dup {
			// Duplicate ids would silently overwrite earlier answers.
			return fail("questions", fmt.Sprintf("duplicate question id %q", question.ID))
		}
		seen[question.ID] = struct{}{}
	}

	return nil
}
