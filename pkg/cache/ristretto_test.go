package cache

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

type testPayload struct {
	Prices []float64
}

func newTestCache[V any](t *testing.T) *RistrettoCache[V] {
	t.Helper()

	c, err := NewRistrettoCache[V](&RistrettoConfig{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
		Logger:      zap.NewNop(),
	})
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	t.Cleanup(c.Close)

	return c
}

func TestRistrettoCache(t *testing.T) {
	c := newTestCache[string](t)

	t.Run("set-and-get", func(t *testing.T) {
		key := "fingerprint-a"
		value := "outcome-a"

		success := c.Set(key, value, 1*time.Hour)
		if !success {
			t.Error("expected Set to succeed")
		}

		// Wait for Ristretto to process pending writes
		c.Wait()

		retrieved, found := c.Get(key)
		if !found {
			t.Error("expected key to be found")
		}

		if retrieved != value {
			t.Errorf("expected %q, got %q", value, retrieved)
		}
	})

	t.Run("get-missing-key", func(t *testing.T) {
		_, found := c.Get("nonexistent")
		if found {
			t.Error("expected key to not be found")
		}
	})

	t.Run("delete", func(t *testing.T) {
		key := "fingerprint-b"

		c.Set(key, "outcome-b", 1*time.Hour)
		c.Wait()

		_, found := c.Get(key)
		if !found {
			t.Error("expected key to exist before delete")
		}

		c.Delete(key)

		_, found = c.Get(key)
		if found {
			t.Error("expected key to be deleted")
		}
	})

	t.Run("clear", func(t *testing.T) {
		c.Set("fingerprint-c", "outcome-c", 1*time.Hour)
		c.Wait()

		c.Clear()

		_, found := c.Get("fingerprint-c")
		if found {
			t.Error("expected cache to be empty after clear")
		}
	})
}

func TestRistrettoCacheTypedPayload(t *testing.T) {
	c := newTestCache[*testPayload](t)

	want := &testPayload{Prices: []float64{3.6, 2.0}}
	if !c.Set("fingerprint-d", want, 1*time.Hour) {
		t.Fatal("expected Set to succeed")
	}
	c.Wait()

	got, found := c.Get("fingerprint-d")
	if !found {
		t.Fatal("expected key to be found")
	}
	if got != want {
		t.Errorf("expected the cached pointer back, got %+v", got)
	}

	missing, found := c.Get("fingerprint-e")
	if found {
		t.Error("expected key to not be found")
	}
	if missing != nil {
		t.Errorf("expected zero value on miss, got %+v", missing)
	}
}
