package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a non-empty token")
	}

	email, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %q", email)
	}
}

func TestMemoryStoreTokensAreUnique(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := store.Create(ctx, "alice@example.com")
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if seen[token] {
			t.Fatalf("token %q issued twice", token)
		}
		seen[token] = true
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, _ := store.Create(ctx, "alice@example.com")
	if err := store.Delete(ctx, token); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

// An expired session must be indistinguishable from an absent one.
func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(-time.Minute)
	ctx := context.Background()

	token, err := store.Create(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := store.Get(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}

	unknownErr := func() error {
		_, err := store.Get(ctx, "no-such-token")
		return err
	}()
	expiredErr := func() error {
		_, err := store.Get(ctx, token)
		return err
	}()
	if !errors.Is(unknownErr, ErrNotFound) || !errors.Is(expiredErr, ErrNotFound) {
		t.Errorf("expired and unknown sessions must fail the same way: %v vs %v", expiredErr, unknownErr)
	}
}
