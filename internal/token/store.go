// Package token provides the file-backed bearer token accessor.
//
// jjprep does not implement an auth system: the API bearer token is
// pre-issued (by the web app's session flow) and dropped into a JSON
// file; this package only loads it and decides whether it is still
// usable.
package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// ErrNoToken is returned by Load when no token file exists.
var ErrNoToken = errors.New("no token stored")

// Store reads and writes an oauth2 token at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store for the given token path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the token file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored token. Returns ErrNoToken when the file does
// not exist.
func (s *Store) Load() (*oauth2.Token, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("reading token file: %w", err)
	}

	var t oauth2.Token
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}
	return &t, nil
}

// Save writes the token with owner-only permissions.
func (s *Store) Save(t *oauth2.Token) error {
	if t == nil || t.AccessToken == "" {
		return errors.New("token must have an access token")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling token: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Clear removes the stored token. Missing files are not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// Accessor returns a function yielding the current token, or nil when
// none is stored or the stored token is expired. Requests fall back to
// the session cookie when the accessor yields nil.
func (s *Store) Accessor() func() *oauth2.Token {
	return func() *oauth2.Token {
		t, err := s.Load()
		if err != nil {
			return nil
		}
		// Valid covers expiry with the standard leeway; a token
		// without an expiry is treated as non-expiring.
		if !t.Valid() {
			return nil
		}
		return t
	}
}
