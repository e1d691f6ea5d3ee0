package cache

import (
	"testing"
	"time"
)

func TestBadgerStoreSetGet(t *testing.T) {
	store, err := NewInMemoryStore(0)
	if err != nil {
		t.Fatalf("NewInMemoryStore failed: %v", err)
	}
	defer store.Close()

	want := []float32{0.1, -0.2, 0.3, 1.0}
	if err := store.Set("abc", want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := store.Get("abc")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestBadgerStoreMiss(t *testing.T) {
	store, err := NewInMemoryStore(0)
	if err != nil {
		t.Fatalf("NewInMemoryStore failed: %v", err)
	}
	defer store.Close()

	vector, ok, err := store.Get("never-stored")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected a miss for an unknown key")
	}
	if vector != nil {
		t.Errorf("expected nil vector on miss, got %v", vector)
	}
}

func TestBadgerStoreOverwrite(t *testing.T) {
	store, err := NewInMemoryStore(0)
	if err != nil {
		t.Fatalf("NewInMemoryStore failed: %v", err)
	}
	defer store.Close()

	if err := store.Set("key", []float32{1, 2}); err != nil {
		t.Fatalf("first Set failed: %v", err)
	}
	if err := store.Set("key", []float32{3, 4, 5}); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	got, ok, err := store.Get("key")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if len(got) != 3 || got[0] != 3 {
		t.Errorf("expected overwritten vector [3 4 5], got %v", got)
	}
}

func TestBadgerStoreTTL(t *testing.T) {
	store, err := NewInMemoryStore(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("NewInMemoryStore failed: %v", err)
	}
	defer store.Close()

	if err := store.Set("short-lived", []float32{1}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if _, ok, _ := store.Get("short-lived"); !ok {
		t.Fatal("expected a hit before expiry")
	}

	time.Sleep(150 * time.Millisecond)

	if _, ok, _ := store.Get("short-lived"); ok {
		t.Error("expected entry to expire after TTL")
	}
}

func TestBadgerStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewBadgerStore(dir, 0)
	if err != nil {
		t.Fatalf("NewBadgerStore failed: %v", err)
	}
	if err := store.Set("durable", []float32{0.5, 0.25}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewBadgerStore(dir, 0)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get("durable")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("expected entry to survive a reopen")
	}
	if len(got) != 2 || got[0] != 0.5 || got[1] != 0.25 {
		t.Errorf("unexpected vector after reopen: %v", got)
	}
}

func TestVectorRoundTrip(t *testing.T) {
	want := []float32{0, -1.5, 3.14159, 1e-8}
	got := decodeVector(encodeVector(want))

	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: expected %g, got %g", i, want[i], got[i])
		}
	}
}

func TestDecodeVectorRejectsMalformed(t *testing.T) {
	if v := decodeVector(nil); v != nil {
		t.Errorf("expected nil for empty data, got %v", v)
	}
	if v := decodeVector([]byte{1, 2, 3}); v != nil {
		t.Errorf("expected nil for truncated data, got %v", v)
	}
}
