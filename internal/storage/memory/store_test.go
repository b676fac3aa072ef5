package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Lixing-Zhang/foodie-express/internal/storage"
)

func TestStoreLoadMissing(t *testing.T) {
	s := New()
	if _, err := s.Load(context.Background(), "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreSaveOverwrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.Save(ctx, "k", []byte("one"))
	_ = s.Save(ctx, "k", []byte("two"))
	got, err := s.Load(ctx, "k")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "two" {
		t.Fatalf("expected two, got %s", got)
	}
}

func TestStoreCopiesValues(t *testing.T) {
	s := New()
	ctx := context.Background()
	in := []byte("abc")
	_ = s.Save(ctx, "k", in)
	in[0] = 'X'

	out, _ := s.Load(ctx, "k")
	if string(out) != "abc" {
		t.Fatalf("stored value aliased input: %s", out)
	}
	out[1] = 'Y'
	again, _ := s.Load(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value aliased output: %s", again)
	}
}

func TestStoreDelete(t *testing.T) {
	s := New()
	ctx := context.Background()
	_ = s.Save(ctx, "k", []byte("v"))
	_ = s.Delete(ctx, "k")
	if _, err := s.Load(ctx, "k"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	s := New()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Save(ctx, fmt.Sprintf("k%d", i), []byte("v"))
		}(i)
	}
	wg.Wait()
	for i := 0; i < 50; i++ {
		if _, err := s.Load(ctx, fmt.Sprintf("k%d", i)); err != nil {
			t.Fatalf("k%d: %v", i, err)
		}
	}
}
