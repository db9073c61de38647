// Package diskvstore keeps each key in its own file under a base directory
// using diskv.
package diskvstore

import (
	"errors"
	"fmt"
	"os"

	"github.com/peterbourgon/diskv/v3"
)

type Store struct {
	d *diskv.Diskv
}

// New returns a store rooted at basePath. Keys are stored flat, one file per
// key, with a small read cache in front.
func New(basePath string) *Store {
	return &Store{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func (s *Store) Get(key string) (string, bool, error) {
	if !s.d.Has(key) {
		return "", false, nil
	}
	b, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("diskv read %s: %w", key, err)
	}
	return string(b), true, nil
}

func (s *Store) Set(key, value string) error {
	if err := s.d.Write(key, []byte(value)); err != nil {
		return fmt.Errorf("diskv write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Remove(key string) error {
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("diskv erase %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
