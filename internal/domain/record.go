package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// playerNameKey is the reserved top-level key in a persisted record; no form
// may use it as a display name.
const playerNameKey = "playerName"

// AnswerRecord is the durable, per-player aggregation of completed form
// answers. On disk it is a single flat JSON object: the player's last known
// display name plus one entry per completed form, keyed by form name. Form
// entry order is preserved across load/save so "the most recently completed
// form" stays meaningful.
type AnswerRecord struct {
	PlayerName string

	forms map[string]map[string]string
	order []string
}

// ReservedFormName reports whether a form display name would collide with
// the record's own fields.
func ReservedFormName(name string) bool {
	return name == playerNameKey
}

// SetAnswers merges the answers for one form into the record, replacing any
// previous answers for that form and leaving other forms untouched.
func (r *AnswerRecord) SetAnswers(formName string, answers map[string]string) {
	if r.forms == nil {
		r.forms = make(map[string]map[string]string)
	}
	if _, exists := r.forms[formName]; !exists {
		r.order = append(r.order, formName)
	}
	copied := make(map[string]string, len(answers))
	for id, answer := range answers {
		copied[id] = answer
	}
	r.forms[formName] = copied
}

// Answers returns the stored answers for a form.
func (r AnswerRecord) Answers(formName string) (map[string]string, bool) {
	answers, ok := r.forms[formName]
	return answers, ok
}

// Has reports whether the record contains a completed entry for the form.
func (r AnswerRecord) Has(formName string) bool {
	_, ok := r.forms[formName]
	return ok
}

// FormNames lists the completed forms in the order they were first saved.
func (r AnswerRecord) FormNames() []string {
	return append([]string(nil), r.order...)
}

// LatestFormName returns the most recently added form entry.
func (r AnswerRecord) LatestFormName() (string, bool) {
	if len(r.order) == 0 {
		return "", false
	}
	return r.order[len(r.order)-1], true
}

// MarshalJSON writes the flat record layout. Form entries keep insertion
// order; question ids within a form are written sorted for stable output.
func (r AnswerRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	writeKey := func(key string) error {
		encoded, err := json.Marshal(key)
		if err != nil {
			return err
		}
		buf.Write(encoded)
		buf.WriteByte(':')
		return nil
	}

	if err := writeKey(playerNameKey); err != nil {
		return nil, err
	}
	name, err := json.Marshal(r.PlayerName)
	if err != nil {
		return nil, err
	}
	buf.Write(name)

	for _, formName := range r.order {
		buf.WriteByte(',')
		if err := writeKey(formName); err != nil {
			return nil, err
		}

		answers := r.forms[formName]
		ids := make([]string, 0, len(answers))
		for id := range answers {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		buf.WriteByte('{')
		for i, id := range ids {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(id); err != nil {
				return nil, err
			}
			answer, err := json.Marshal(answers[id])
			if err != nil {
				return nil, err
			}
			buf.Write(answer)
		}
		buf.WriteByte('}')
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the flat record layout with a token walk so the form
// entry order in the file is retained.
func (r *AnswerRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("answer record: expected object, got %v", tok)
	}

	r.PlayerName = ""
	r.forms = make(map[string]map[string]string)
	r.order = nil

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("answer record: expected string key, got %v", keyTok)
		}

		if key == playerNameKey {
			if err := dec.Decode(&r.PlayerName); err != nil {
				return fmt.Errorf("answer record: decode player name: %w", err)
			}
			continue
		}

		var answers map[string]string
		if err := dec.Decode(&answers); err != nil {
			return fmt.Errorf("answer record: decode answers for form %q: %w", key, err)
		}
		if _, exists := r.forms[key]; !exists {
			r.order = append(r.order, key)
		}
		r.forms[key] = answers
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
