package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStoreExpiry(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	current := time.Unix(1000, 0)
	s.now = func() time.Time { return current }

	s.Set("teams", []string{"KC"})
	if _, ok := s.Get("teams"); !ok {
		t.Fatalf("fresh entry not found")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := s.Get("teams"); ok {
		t.Fatalf("expired entry still returned")
	}
}

func TestStoreGetOrLoad(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	loads := 0
	loader := func(context.Context) (any, error) {
		loads++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		value, err := s.GetOrLoad(context.Background(), "key", loader)
		if err != nil {
			t.Fatalf("GetOrLoad returned %v", err)
		}
		if value != "value" {
			t.Fatalf("GetOrLoad value = %v", value)
		}
	}
	if loads != 1 {
		t.Fatalf("loader ran %d times, want 1", loads)
	}
}

func TestStoreGetOrLoadErrorNotCached(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	boom := errors.New("boom")
	loads := 0

	_, err := s.GetOrLoad(context.Background(), "key", func(context.Context) (any, error) {
		loads++
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	_, err = s.GetOrLoad(context.Background(), "key", func(context.Context) (any, error) {
		loads++
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("second load returned %v", err)
	}
	if loads != 2 {
		t.Fatalf("loader ran %d times, want 2", loads)
	}
}

func TestStoreDeletePrefix(t *testing.T) {
	t.Parallel()

	s := NewStore(time.Minute)
	s.Set("scoreboard:2025:1", 1)
	s.Set("scoreboard:2025:2", 2)
	s.Set("teams", 3)

	s.DeletePrefix("scoreboard:")

	if _, ok := s.Get("scoreboard:2025:1"); ok {
		t.Fatalf("prefixed entry survived DeletePrefix")
	}
	if _, ok := s.Get("teams"); !ok {
		t.Fatalf("unrelated entry was deleted")
	}
}
