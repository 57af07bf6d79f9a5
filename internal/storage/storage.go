// Package storage persists engine state as opaque JSON documents under
// well-known keys. The engine treats every store as best effort: a failing
// store never blocks a recommendation.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// Keys used by the engine
const (
	KeyProfiles    = "profiles"
	KeyHistory     = "history"
	KeyCurrentGame = "current_game"
	KeyStatistics  = "statistics"
)

// ErrNotFound is returned by Load when nothing is stored under a key
var ErrNotFound = errors.New("storage: key not found")

var validKey = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Store loads and saves JSON documents by key
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// ValidateKey rejects keys that cannot be used as file names
func ValidateKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("storage: invalid key %q", key)
	}
	return nil
}

// LoadJSON decodes the document under key into v. It reports false without
// error when the key is absent.
func LoadJSON(ctx context.Context, s Store, key string, v any) (bool, error) {
	data, err := s.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SaveJSON encodes v and stores it under key
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
