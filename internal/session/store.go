// Package session ties an editable mesh to its autosave store and drives the
// per-frame sync and autosave cycle
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/philipparndt/gomesh/pkg/mesh"
)

// ErrNotFound is returned when no document is stored under a key
var ErrNotFound = errors.New("document not found")

// Store persists mesh documents by key
type Store interface {
	Load(ctx context.Context, key string) (mesh.Document, error)
	Save(ctx context.Context, key string, doc mesh.Document) error
}

// NewKey returns a fresh autosave key below prefix, one per editor session
func NewKey(prefix string) string {
	return prefix + "." + uuid.NewString()
}

// StoreOptions configures a BadgerStore
type StoreOptions struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
	// SyncWrites fsyncs every save
	SyncWrites bool
	// Logger receives Badger's internal log lines. Nil silences them.
	Logger *slog.Logger
}

// BadgerStore keeps documents in an embedded Badger database. It is safe for
// concurrent use.
type BadgerStore struct {
	db *badger.DB
}

// badgerLogger adapts slog to Badger's logger interface
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// OpenStore opens the database described by opts
func OpenStore(opts StoreOptions) (*BadgerStore, error) {
	var bopts badger.Options
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Path == "" {
			return nil, errors.New("path is required for a persistent store")
		}
		if err := os.MkdirAll(opts.Path, 0750); err != nil {
			return nil, fmt.Errorf("failed to create store directory %s: %w", opts.Path, err)
		}
		bopts = badger.DefaultOptions(opts.Path)
	}
	bopts = bopts.WithSyncWrites(opts.SyncWrites).WithNumVersionsToKeep(1)
	if opts.Logger != nil {
		bopts = bopts.WithLogger(&badgerLogger{logger: opts.Logger})
	} else {
		bopts = bopts.WithLogger(nil)
	}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Load returns the document stored under key
func (s *BadgerStore) Load(ctx context.Context, key string) (mesh.Document, error) {
	if err := ctx.Err(); err != nil {
		return mesh.Document{}, err
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return mesh.Document{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return mesh.Document{}, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return mesh.ParseDocument(data)
}

// Save stores doc under key, replacing any previous document
func (s *BadgerStore) Save(ctx context.Context, key string, doc mesh.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := doc.Encode()
	if err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	}); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Delete removes the document stored under key
func (s *BadgerStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys returns the stored keys starting with prefix, in key order
func (s *BadgerStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Close closes the database
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
