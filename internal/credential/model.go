// README: Credential store for the model API key (memory, local file, Redis, Postgres backends).
package credential

import (
	"context"
	"errors"
	"strings"
)

// KeyName is the fixed, well-known name the API key is stored under.
const KeyName = "gemini_api_key"

// ErrEmptyKey is returned by Set when the key is blank.
var ErrEmptyKey = errors.New("api key must not be empty")

// Store holds a single API key. ok is false when no key has been set,
// which is distinct from an empty string.
type Store interface {
	Get(ctx context.Context) (key string, ok bool, err error)
	Set(ctx context.Context, key string) error
}

func checkKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}
	return nil
}

// Seed stores key only when the store is still empty. A blank key is a no-op.
func Seed(ctx context.Context, s Store, key string) (bool, error) {
	if strings.TrimSpace(key) == "" {
		return false, nil
	}
	_, ok, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if ok {
		return false, nil
	}
	if err := s.Set(ctx, key); err != nil {
		return false, err
	}
	return true, nil
}
