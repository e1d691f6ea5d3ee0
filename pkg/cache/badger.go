package cache

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

// Store persists embedding vectors keyed by content hash.
type Store interface {
	// Get returns the vector stored under key, or ok=false when absent.
	Get(key string) (vector []float32, ok bool, err error)

	// Set stores a vector under key, replacing any existing entry.
	Set(key string, vector []float32) error

	// Close releases the underlying storage.
	Close() error
}

// BadgerStore is a Store backed by a Badger key-value database.
type BadgerStore struct {
	db  *badger.DB
	ttl time.Duration
}

// NewBadgerStore opens (or creates) a Badger database at path. Entries
// older than ttl are evicted; a zero ttl keeps entries forever.
func NewBadgerStore(path string, ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger logs at INFO on every open otherwise

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache at %s: %w", path, err)
	}

	return &BadgerStore{db: db, ttl: ttl}, nil
}

// NewInMemoryStore creates a BadgerStore that lives entirely in memory.
// Useful for tests and for processes that want request-level caching
// without a disk footprint.
func NewInMemoryStore(ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory embedding cache: %w", err)
	}

	return &BadgerStore{db: db, ttl: ttl}, nil
}

// Get implements Store. A malformed stored value is treated as a miss.
func (s *BadgerStore) Get(key string) ([]float32, bool, error) {
	var vector []float32

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			vector = decodeVector(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache read failed: %w", err)
	}
	if vector == nil {
		return nil, false, nil
	}

	return vector, true, nil
}

// Set implements Store.
func (s *BadgerStore) Set(key string, vector []float32) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(key), encodeVector(vector))
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("cache write failed: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// encodeVector serializes a float32 slice to bytes.
func encodeVector(vector []float32) []byte {
	buf := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// decodeVector deserializes bytes to a float32 slice.
func decodeVector(data []byte) []float32 {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil
	}
	vector := make([]float32, len(data)/4)
	for i := range vector {
		vector[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vector
}
