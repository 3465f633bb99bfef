// Package catalog loads, validates, and serves the form catalog: the typed
// form definitions plus the operator-configurable message table. The raw
// document stays at the file boundary; everything past Load works with
// domain.Form values.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jumpypanter/serverforms/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	catalogFileMode = 0o600
	catalogDirMode  = 0o700
	tempFilePattern = ".catalog-*.tmp"
)

var ErrFormExists = errors.New("form already exists")

// Catalog holds the validated form definitions. Reload swaps the whole
// content atomically under the lock, so readers never observe a half-loaded
// catalog.
type Catalog struct {
	path   string
	logger *slog.Logger

	mu       sync.RWMutex
	forms    map[string]domain.Form
	order    []string
	messages map[string]string
}

// Load reads and validates the catalog at path, generating the default
// catalog on disk first when the file does not exist yet.
func Load(path string, logger *slog.Logger) (*Catalog, error) {
	c := &Catalog{path: filepath.Clean(path), logger: logger}

	if _, err := os.Stat(c.path); errors.Is(err, os.ErrNotExist) {
		logger.Warn("catalog file not found, generating default catalog", slog.String("path", c.path))
		if err := writeSchema(c.path, defaultSchema()); err != nil {
			return nil, fmt.Errorf("generate default catalog: %w", err)
		}
	}

	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads and re-validates the catalog file, replacing the loaded
// content only when the new content is valid.
func (c *Catalog) Reload() error {
	file, err := readSchema(c.path)
	if err != nil {
		return err
	}
	if err := validateForms(file.Forms, c.logger); err != nil {
		return err
	}

	forms := make(map[string]domain.Form, len(file.Forms))
	order := file.sortedFormKeys()
	for _, key := range order {
		forms[key] = toForm(key, file.Forms[key])
	}

	c.mu.Lock()
	c.forms = forms
	c.order = order
	c.messages = file.Messages
	c.mu.Unlock()

	c.logger.Info("catalog loaded", slog.String("path", c.path), slog.Int("forms", len(forms)))
	return nil
}

// Form returns the form stored under the given catalog key.
func (c *Catalog) Form(key string) (domain.Form, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	form, ok := c.forms[key]
	return form, ok
}

// FormByCommand returns the form whose command token matches.
func (c *Catalog) FormByCommand(command string) (domain.Form, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, key := range c.order {
		if c.forms[key].Command == command {
			return c.forms[key], true
		}
	}
	return domain.Form{}, false
}

// Forms lists every form in catalog key order.
func (c *Catalog) Forms() []domain.Form {
	c.mu.RLock()
	defer c.mu.RUnlock()

	forms := make([]domain.Form, 0, len(c.order))
	for _, key := range c.order {
		forms = append(forms, c.forms[key])
	}
	return forms
}

// Message returns the configured message for key, or fallback when absent.
// Implements ports.MessageSource.
func (c *Catalog) Message(key, fallback string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if message, ok := c.messages[key]; ok {
		return message
	}
	return fallback
}

// Expand substitutes {placeholder} pairs into a message template. Pairs are
// placeholder names (without braces) followed by their values.
func Expand(template string, pairs ...string) string {
	replacements := make([]string, 0, len(pairs))
	for i := 0; i+1 < len(pairs); i += 2 {
		replacements = append(replacements, "{"+pairs[i]+"}", pairs[i+1])
	}
	return strings.NewReplacer(replacements...).Replace(template)
}

// CreateForm adds a new empty form to the catalog and saves it. The command
// token defaults to the form name, matching the original authoring flow.
func (c *Catalog) CreateForm(name string, allowMultipleResponses bool) error {
	if name == "" || domain.ReservedFormName(name) {
		return &ValidationError{FormKey: name, Field: "name", Reason: "missing or reserved"}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.forms[name]; exists {
		return ErrFormExists
	}

	if c.forms == nil {
		c.forms = make(map[string]domain.Form)
	}
	c.forms[name] = domain.Form{
		Key:                    name,
		Name:                   name,
		Command:                name,
		AllowMultipleResponses: allowMultipleResponses,
		ReturnAnswers:          true,
		Questions:              []domain.Question{},
	}
	c.order = append(c.order, name)

	return c.saveLocked()
}

// AddQuestion appends a question to a form and saves the catalog. Duplicate
// question ids are rejected.
func (c *Catalog) AddQuestion(formKey, questionID, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	form, ok := c.forms[formKey]
	if !ok {
		return domain.ErrFormNotFound
	}
	if _, dup := form.QuestionByID(questionID); dup {
		return &ValidationError{FormKey: formKey, Field: "questions", Reason: fmt.Sprintf("duplicate question id %q", questionID)}
	}

	form.Questions = append(form.Questions, domain.Question{ID: questionID, Text: text})
	c.forms[formKey] = form

	return c.saveLocked()
}

// RemoveQuestion deletes a question from a form and saves the catalog.
func (c *Catalog) RemoveQuestion(formKey, questionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	form, ok := c.forms[formKey]
	if !ok {
		return domain.ErrFormNotFound
	}

	for i, question := range form.Questions {
		if question.ID == questionID {
			form.Questions = append(form.Questions[:i], form.Questions[i+1:]...)
			c.forms[formKey] = form
			return c.saveLocked()
		}
	}

	return domain.ErrMalformedQuestion
}

func (c *Catalog) saveLocked() error {
	file := fileSchema{
		Forms:    make(map[string]formSchema, len(c.forms)),
		Messages: c.messages,
	}
	for key, form := range c.forms {
		file.Forms[key] = fromForm(form)
	}

	if err := writeSchema(c.path, file); err != nil {
		c.logger.Error("failed to save catalog", slog.String("path", c.path), slog.Any("error", err))
		return err
	}
	return nil
}

func readSchema(path string) (fileSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileSchema{}, fmt.Errorf("read catalog file: %w", err)
	}

	var file fileSchema
	if isTOML(path) {
		if err := toml.Unmarshal(data, &file); err != nil {
			return fileSchema{}, fmt.Errorf("decode catalog file: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &file); err != nil {
			return fileSchema{}, fmt.Errorf("decode catalog file: %w", err)
		}
	}

	if file.Forms == nil {
		return fileSchema{}, errors.New("catalog file is missing the 'forms' section")
	}
	return file, nil
}

func writeSchema(path string, file fileSchema) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(file)
	} else {
		data, err = json.MarshalIndent(file, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode catalog file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), catalogDirMode); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp catalog file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp catalog file: %w", err)
	}
	if err := tempFile.Chmod(catalogFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp catalog file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp catalog file: %w", err)
	}
	if err := os.Rename(tempName, path); err != nil {
		return fmt.Errorf("replace catalog file: %w", err)
	}
	cleanup = false

	return nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
