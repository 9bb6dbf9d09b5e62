// Package session holds the current authentication state: a durable
// file-backed key/value store that survives between runs and an ephemeral
// in-memory mirror cleared when the session ends.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store is a durable key/value store backed by one file per key.
// Files are created with mode 0600 under a 0700 directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on the first Set.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid store key: %q", key)
	}
	return filepath.Join(s.dir, key), nil
}

// Get returns the value for key and whether it exists.
func (s *Store) Get(key string) (string, bool) {
	p, err := s.path(key)
	if err != nil {
		return "", false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set writes the value for key.
func (s *Store) Set(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return err
	}
	return os.WriteFile(p, []byte(value), 0600)
}

// Remove deletes the key. Removing a missing key is not an error.
func (s *Store) Remove(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Keys returns all stored keys in directory order.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		keys = append(keys, e.Name())
	}
	return keys, nil
}

// RemovePrefix deletes every key that starts with prefix.
func (s *Store) RemovePrefix(prefix string) error {
	keys, err := s.Keys()
	if err != nil {
		return err
	}
	for _, k := range keys {
		if strings.HasPrefix(k, prefix) {
			if err := s.Remove(k); err != nil {
				return err
			}
		}
	}
	return nil
}
