package kvtest

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/mycelian/casefiles/internal/kv"
)

// Run exercises a minimal compliance suite against a kv.Store implementation.
// Implementations should provide a clean, isolated store and return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) kv.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()
	key := "k-" + uuid.New().String()

	if _, err := s.Get(ctx, key); !errors.Is(err, kv.ErrNotFound) {
		t.Fatalf("Get missing key: want kv.ErrNotFound, got %v", err)
	}

	first := []byte(`[{"id":"1"}]`)
	if err := s.Put(ctx, key, first); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, key)
	if err != nil || !bytes.Equal(got, first) {
		t.Fatalf("Get after Put: got=%q err=%v", got, err)
	}

	// Put overwrites the whole value.
	second := []byte(`[{"id":"2"},{"id":"1"}]`)
	if err := s.Put(ctx, key, second); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, err = s.Get(ctx, key)
	if err != nil || !bytes.Equal(got, second) {
		t.Fatalf("Get after overwrite: got=%q err=%v", got, err)
	}

	// Returned slices must not alias the stored value.
	got[0] = 'X'
	again, err := s.Get(ctx, key)
	if err != nil || !bytes.Equal(again, second) {
		t.Fatalf("stored value mutated through returned slice: got=%q err=%v", again, err)
	}

	other := "k-" + uuid.New().String()
	if err := s.Put(ctx, other, []byte("x")); err != nil {
		t.Fatalf("Put second key: %v", err)
	}
	if got, err := s.Get(ctx, key); err != nil || !bytes.Equal(got, second) {
		t.Fatalf("keys interfere: got=%q err=%v", got, err)
	}
}
