// Package memkv is an in-process kv.Store used by tests and the "memory" driver.
package memkv

import (
	"context"
	"errors"
	"sync"

	"github.com/mycelian/casefiles/internal/kv"
)

var errClosed = errors.New("memkv: store closed")

type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	puts   int
	closed bool
}

func New() *Store { return &Store{data: make(map[string][]byte)} }

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, errClosed
	}
	v, ok := s.data[key]
	if !ok {
		return nil, kv.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errClosed
	}
	s.data[key] = append([]byte(nil), value...)
	s.puts++
	return nil
}

// Puts returns how many writes the store has accepted.
func (s *Store) Puts() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.puts
}

// HealthPing implements health.HealthPinger.
func (s *Store) HealthPing(ctx context.Context) error { return ctx.Err() }

func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
