// ABOUTME: Byte-level key-value engines behind the KVStore fallback backend.
// ABOUTME: Local badger (disk or memory) or Charm KV with automatic cloud sync.
package storage

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"go.uber.org/multierr"
)

// errKeyMissing is returned by engines when a key has never been written.
var errKeyMissing = errors.New("key missing")

// kvEngine is the minimal byte store the KVStore needs.
type kvEngine interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Close() error
}

// badgerEngine stores collections in a local badger database.
type badgerEngine struct {
	db *badger.DB
}

// openBadgerEngine opens a badger database in dir, or in memory when dir is empty.
func openBadgerEngine(dir string) (*badgerEngine, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("create kv directory: %w", err)
		}
		opts = badger.DefaultOptions(dir)
	}

	db, err := badger.Open(opts.WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &badgerEngine{db: db}, nil
}

func (e *badgerEngine) Get(key []byte) ([]byte, error) {
	var value []byte
	err := e.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errKeyMissing
	}
	return value, err
}

func (e *badgerEngine) Set(key, value []byte) error {
	return e.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (e *badgerEngine) Close() error {
	return e.db.Close()
}

const defaultCharmHost = "charm.2389.dev"

// charmEngine stores collections in Charm KV and syncs after every write.
type charmEngine struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

// openCharmEngine opens the named Charm KV database and pulls remote state.
func openCharmEngine(name, host string) (*charmEngine, error) {
	if host == "" {
		host = defaultCharmHost
	}
	// Set server before opening KV
	if err := os.Setenv("CHARM_HOST", host); err != nil {
		return nil, err
	}

	db, err := kv.OpenWithDefaults(name)
	if err != nil {
		return nil, fmt.Errorf("open charm kv (is another liftlog process running?): %w", err)
	}

	e := &charmEngine{kv: db, autoSync: true}

	// Pull remote data on startup; offline is fine
	_ = db.Sync()
	return e, nil
}

func (e *charmEngine) Get(key []byte) ([]byte, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	value, err := e.kv.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, errKeyMissing
	}
	return value, err
}

func (e *charmEngine) Set(key, value []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.kv.Set(key, value); err != nil {
		return err
	}
	if e.autoSync {
		_ = e.kv.Sync()
	}
	return nil
}

// Close pushes pending writes to Charm Cloud before closing the local database.
func (e *charmEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return multierr.Append(e.kv.Sync(), e.kv.Close())
}
