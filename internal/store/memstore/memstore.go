// Package memstore is a process-local KV. Nothing survives a restart.
package memstore

import "sync"

type Store struct {
	mu sync.Mutex
	m  map[string]string
}

func New() *Store {
	return &Store{m: make(map[string]string)}
}

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *Store) Close() error { return nil }
