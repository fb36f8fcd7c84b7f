package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("test-secret", time.Hour)

	token, err := store.Create(ctx, 42)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	userID, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if userID != 42 {
		t.Fatalf("got user %d, want 42", userID)
	}
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	store := NewMemoryStore("test-secret", time.Hour)

	_, err := store.Get(context.Background(), "never-issued")
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("got %v, want ErrNoSession", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("test-secret", -time.Second) // already expired on issue

	token, err := store.Create(ctx, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = store.Get(ctx, token)
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("got %v, want ErrNoSession", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("test-secret", time.Hour)

	token, err := store.Create(ctx, 7)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err = store.Get(ctx, token)
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("got %v, want ErrNoSession", err)
	}

	// deleting an unknown token is fine
	if err := store.Delete(ctx, "never-issued"); err != nil {
		t.Fatalf("delete unknown: %v", err)
	}
}

func TestMemoryStoreTokensAreUnique(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("test-secret", time.Hour)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token, err := store.Create(ctx, i)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[token] {
			t.Fatalf("token %q issued twice", token)
		}
		seen[token] = true
	}
}
