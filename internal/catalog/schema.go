package catalog

import (
	"sort"

	"github.com/jumpypanter/serverforms/internal/domain"
)

// fileSchema is the on-disk catalog document. JSON is the native format
// (the original configuration layout); the same schema decodes from TOML
// when the operator prefers it.
type fileSchema struct {
	Forms    map[string]formSchema `json:"forms" toml:"forms"`
	Messages map[string]string     `json:"messages,omitempty" toml:"messages,omitempty"`
}

type formSchema struct {
	Name                   string           `json:"name" toml:"name"`
	AllowMultipleResponses bool             `json:"allowMultipleResponses" toml:"allowMultipleResponses"`
	ReturnAnswers          bool             `json:"returnAnswers" toml:"returnAnswers"`
	Command                string           `json:"command" toml:"command"`
	Questions              []questionSchema `json:"questions" toml:"questions"`
}

type questionSchema struct {
	ID   string `json:"id" toml:"id"`
	Text string `json:"question" toml:"question"`
}

func (f fileSchema) sortedFormKeys() []string {
	keys := make([]string, 0, len(f.Forms))
	for key := range f.Forms {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func toForm(key string, schema formSchema) domain.Form {
	questions := make([]domain.Question, 0, len(schema.Questions))
	for _, q := range schema.Questions {
		questions = append(questions, domain.Question{ID: q.ID, Text: q.Text})
	}

	return domain.Form{
		Key:                    key,
		Name:                   schema.Name,
		Command:                schema.Command,
		AllowMultipleResponses: schema.AllowMultipleResponses,
		ReturnAnswers:          schema.ReturnAnswers,
		Questions:              questions,
	}
}

func fromForm(form domain.Form) formSchema {
	questions := make([]questionSchema, 0, len(form.Questions))
	for _, q := range form.Questions {
		questions = append(questions, questionSchema{ID: q.ID, Text: q.Text})
	}

	return formSchema{
		Name:                   form.Name,
		AllowMultipleResponses: form.AllowMultipleResponses,
		ReturnAnswers:          form.ReturnAnswers,
		Command:                form.Command,
		Questions:              questions,
	}
}
