// Package jsonfile stores answer records as one pretty-printed JSON file
// per player identity in a fixed answers directory.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jumpypanter/serverforms/internal/domain"
	"github.com/jumpypanter/serverforms/internal/ports"
)

const (
	answersFileMode = 0o600
	answersDirMode  = 0o700
	tempFilePattern = ".answers-*.json.tmp"
)

// Repository is the file-backed answer store. Records are read-modify-
// written under a per-directory lock; there is no cross-process locking.
type Repository struct {
	dir    string
	logger *slog.Logger
	mu     *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.AnswerRepository = (*Repository)(nil)

func NewRepository(dir string, logger *slog.Logger) *Repository {
	dir = filepath.Clean(dir)
	return &Repository{dir: dir, logger: logger, mu: lockForPath(dir)}
}

// HasCompleted reports whether the player's record already contains an
// entry for the form. Any read failure is logged and treated as "no prior
// data" so a broken file never blocks the duplicate check.
func (r *Repository) HasCompleted(ctx context.Context, playerID uuid.UUID, formName string) bool {
	if ctx.Err() != nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	record, err := r.readRecord(playerID)
	if err != nil {
		if !errors.Is(err, domain.ErrNoResponses) {
			r.logger.Error("failed to check existing responses",
				slog.String("player_id", playerID.String()),
				slog.Any("error", err),
			)
		}
		return false
	}
	return record.Has(formName)
}

// Save merges one form's answers into the player's record and overwrites
// the record durably, preserving every other form's answers.
func (r *Repository) Save(ctx context.Context, playerID uuid.UUID, playerName, formName string, answers map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	record, err := r.readRecord(playerID)
	if err != nil && !errors.Is(err, domain.ErrNoResponses) {
		// A corrupt record would otherwise discard older forms silently;
		// start fresh but leave a trace for the operator.
		r.logger.Error("failed to read answers file, starting a fresh record",
			slog.String("player_id", playerID.String()),
			slog.Any("error", err),
		)
		record = domain.AnswerRecord{}
	}

	record.PlayerName = playerName
	record.SetAnswers(formName, answers)

	if err := r.writeRecord(playerID, record); err != nil {
		return err
	}

	r.logger.Info("saved form answers",
		slog.String("player_id", playerID.String()),
		slog.String("form", formName),
	)
	return nil
}

// Record loads the player's full answer record.
func (r *Repository) Record(ctx context.Context, playerID uuid.UUID) (domain.AnswerRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.AnswerRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.readRecord(playerID)
}

// ListPlayerNames scans every record in the answers directory and returns
// the stored display names. Unreadable files are skipped with a log entry.
func (r *Repository) ListPlayerNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read answers directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(r.dir, entry.Name()))
		if err != nil {
			r.logger.Error("failed to read answers file", slog.String("file", entry.Name()), slog.Any("error", err))
			continue
		}

		var record domain.AnswerRecord
		if err := json.Unmarshal(data, &record); err != nil {
			r.logger.Error("failed to decode answers file", slog.String("file", entry.Name()), slog.Any("error", err))
			continue
		}
		if record.PlayerName != "" {
			names = append(names, record.PlayerName)
		}
	}

	sort.Strings(names)
	return names, nil
}

func (r *Repository) fileFor(playerID uuid.UUID) string {
	return filepath.Join(r.dir, playerID.String()+".json")
}

func (r *Repository) readRecord(playerID uuid.UUID) (domain.AnswerRecord, error) {
	data, err := os.ReadFile(r.fileFor(playerID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.AnswerRecord{}, domain.ErrNoResponses
		}
		return domain.AnswerRecord{}, fmt.Errorf("read answers file: %w", err)
	}

	var record domain.AnswerRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return domain.AnswerRecord{}, fmt.Errorf("decode answers file: %w", err)
	}
	return record, nil
}

func (r *Repository) writeRecord(playerID uuid.UUID, record domain.AnswerRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode answers file: %w", err)
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return fmt.Errorf("format answers file: %w", err)
	}

	if err := os.MkdirAll(r.dir, answersDirMode); err != nil {
		return fmt.Errorf("create answers directory: %w", err)
	}

	tempFile, err := os.CreateTemp(r.dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp answers file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(pretty.Bytes()); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp answers file: %w", err)
	}
	if err := tempFile.Chmod(answersFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp answers file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp answers file: %w", err)
	}
	if err := os.Rename(tempName, r.fileFor(playerID)); err != nil {
		return fmt.Errorf("replace answers file: %w", err)
	}
	cleanup = false

	return nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}
