// Package usercache resolves player display names to stable identities,
// backed by a single JSON file. Names are matched case-insensitively; the
// first sighting of a name mints a new identity that survives renames of
// the cache entry's display form.
package usercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
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
	cacheFileMode   = 0o600
	cacheDirMode    = 0o700
	tempFilePattern = ".usercache-*.json.tmp"
)

type Cache struct {
	path string
	mu   sync.RWMutex
}

var _ ports.IdentityResolver = (*Cache)(nil)

func NewCache(path string) *Cache {
	return &Cache{path: filepath.Clean(path)}
}

// Resolve returns the identity for a player name, minting and persisting a
// new one when the name has never been seen.
func (c *Cache) Resolve(ctx context.Context, playerName string) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.readEntries()
	if err != nil {
		return uuid.Nil, err
	}

	key := cacheKey(playerName)
	if id, ok := entries[key]; ok {
		return id, nil
	}

	id := uuid.New()
	entries[key] = id
	if err := c.writeEntries(entries); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// Lookup returns the identity for a known player name without minting.
func (c *Cache) Lookup(ctx context.Context, playerName string) (uuid.UUID, error) {
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entries, err := c.readEntries()
	if err != nil {
		return uuid.Nil, err
	}

	if id, ok := entries[cacheKey(playerName)]; ok {
		return id, nil
	}
	return uuid.Nil, domain.ErrPlayerNotFound
}

// Names returns every cached player name key, sorted.
func (c *Cache) Names(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entries, err := c.readEntries()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func cacheKey(playerName string) string {
	return strings.ToLower(strings.TrimSpace(playerName))
}

func (c *Cache) readEntries() (map[string]uuid.UUID, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]uuid.UUID{}, nil
		}
		return nil, fmt.Errorf("read user cache: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode user cache: %w", err)
	}

	entries := make(map[string]uuid.UUID, len(raw))
	for name, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, fmt.Errorf("decode user cache entry %q: %w", name, err)
		}
		entries[name] = id
	}
	return entries, nil
}

func (c *Cache) writeEntries(entries map[string]uuid.UUID) error {
	raw := make(map[string]string, len(entries))
	for name, id := range entries {
		raw[name] = id.String()
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), cacheDirMode); err != nil {
		return fmt.Errorf("create user cache directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(c.path), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp user cache file: %w", err)
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
		return fmt.Errorf("write temp user cache file: %w", err)
	}
	if err := tempFile.Chmod(cacheFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp user cache file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp user cache file: %w", err)
	}
	if err := os.Rename(tempName, c.path); err != nil {
		return fmt.Errorf("replace user cache file: %w", err)
	}
	cleanup = false

	return nil
}
