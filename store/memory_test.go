package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"testing"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.Get(ctx, CardKey("missing"))
	if err != nil || got != nil {
		t.Fatalf("Get absent = %q, %v; want nil, nil", got, err)
	}

	if err := s.Set(ctx, CardKey("c1"), []byte(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	got, err = s.Get(ctx, CardKey("c1"))
	if err != nil || string(got) != `{"a":1}` {
		t.Fatalf("Get = %q, %v", got, err)
	}
}

func TestMemoryStoreFlushOnlyPrefix(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Set(ctx, GameKey("room1"), []byte("x"))
	s.Set(ctx, UserKey("u1"), []byte("y"))
	s.Set(ctx, "other:key", []byte("z"))

	if err := s.FlushAll(ctx); err != nil {
		t.Fatal(err)
	}
	if b, _ := s.Get(ctx, GameKey("room1")); b != nil {
		t.Error("prefixed key survived flush")
	}
	if b, _ := s.Get(ctx, "other:key"); string(b) != "z" {
		t.Error("non-prefixed key deleted by flush")
	}
}

func TestMemoryStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// Create through Update when the key is absent.
	err := s.Update(ctx, UserKey("u1"), func(old []byte) ([]byte, error) {
		if old != nil {
			t.Errorf("old = %q, want nil", old)
		}
		return []byte("1"), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// Returning nil skips the write.
	err = s.Update(ctx, UserKey("u1"), func(old []byte) ([]byte, error) {
		return nil, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if b, _ := s.Get(ctx, UserKey("u1")); string(b) != "1" {
		t.Errorf("skipped write changed value to %q", b)
	}

	// Errors from fn propagate and skip the write.
	boom := errors.New("boom")
	err = s.Update(ctx, UserKey("u1"), func(old []byte) ([]byte, error) {
		return []byte("2"), boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if b, _ := s.Get(ctx, UserKey("u1")); string(b) != "1" {
		t.Errorf("failed update changed value to %q", b)
	}
}

func TestMemoryStoreUpdateSerializesWriters(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	s.Set(ctx, GameKey("counter"), []byte("0"))

	const writers = 50
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Update(ctx, GameKey("counter"), func(old []byte) ([]byte, error) {
				n, err := strconv.Atoi(string(old))
				if err != nil {
					return nil, err
				}
				return []byte(fmt.Sprint(n + 1)), nil
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	b, _ := s.Get(ctx, GameKey("counter"))
	if string(b) != fmt.Sprint(writers) {
		t.Errorf("counter = %s after %d updates, lost writes", b, writers)
	}
}
