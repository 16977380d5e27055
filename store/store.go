// SPDX-License-Identifier: MIT

// Package store persists batch results in BadgerDB.
//
// Records are JSON values under keys
//
//	u/<run id>/<case, 2 digits>/<insertion key, 12 digits>
//
// so a prefix scan returns one run's uniques for one case in insertion order.
// A Store is safe for concurrent use; Badger serializes the transactions.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
)

var (
	// ErrClosed is returned by operations on a closed Store.
	ErrClosed = errors.New("store: closed")

	// ErrNoPath is returned when a persistent store has no directory.
	ErrNoPath = errors.New("store: path is required for a persistent store")

	// ErrNoRunID is returned when a record or query lacks a run id.
	ErrNoRunID = errors.New("store: run id is required")
)

// Config configures Open.
type Config struct {
	// Path is the database directory; ignored when InMemory.
	Path string

	// InMemory keeps everything in RAM (tests, dry runs).
	InMemory bool

	// SyncWrites fsyncs every commit.
	SyncWrites bool

	// Logger receives Badger's internal log lines. Nil silences them.
	Logger *slog.Logger
}

// DefaultConfig returns a durable on-disk configuration without a path.
func DefaultConfig() Config {
	return Config{SyncWrites: true}
}

// InMemoryConfig returns a configuration for an ephemeral store.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// Record is one unique pattern found by a run.
type Record struct {
	RunID   string `json:"run_id"`
	Case    int    `json:"case"`
	Key     int    `json:"key"`
	ID      int    `json:"id"`
	SubCase string `json:"sub_case,omitempty"`
	Source  string `json:"source"`
}

// Store wraps a Badger database.
type Store struct {
	db     *badger.DB
	closed atomic.Bool
}

// badgerLogger adapts slog to badger.Logger.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Open opens (creating if needed) the database described by cfg.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, ErrNoPath
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("store: create %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open badger: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database. Further calls return ErrClosed.
func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return ErrClosed
	}

	return s.db.Close()
}

func recordKey(runID string, caseID, key int) []byte {
	return []byte(fmt.Sprintf("%s%012d", casePrefix(runID, caseID), key))
}

func casePrefix(runID string, caseID int) string {
	return fmt.Sprintf("%s%02d/", runPrefix(runID), caseID)
}

func runPrefix(runID string) string {
	return "u/" + runID + "/"
}

func (s *Store) check(ctx context.Context, runID string) error {
	if s.closed.Load() {
		return ErrClosed
	}
	if runID == "" {
		return ErrNoRunID
	}

	return ctx.Err()
}

// PutUnique stores rec, replacing any record with the same run, case and key.
func (s *Store) PutUnique(ctx context.Context, rec Record) error {
	if err := s.check(ctx, rec.RunID); err != nil {
		return err
	}
	val, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(rec.RunID, rec.Case, rec.Key), val)
	})
	if err != nil {
		return fmt.Errorf("store: put case %d key %d: %w", rec.Case, rec.Key, err)
	}

	return nil
}

// Uniques returns the run's records for caseID in insertion-key order.
func (s *Store) Uniques(ctx context.Context, runID string, caseID int) ([]Record, error) {
	if err := s.check(ctx, runID); err != nil {
		return nil, err
	}

	return s.scan(ctx, casePrefix(runID, caseID))
}

// CountByCase returns how many records the run stored per case.
func (s *Store) CountByCase(ctx context.Context, runID string) (map[int]int, error) {
	if err := s.check(ctx, runID); err != nil {
		return nil, err
	}
	recs, err := s.scan(ctx, runPrefix(runID))
	if err != nil {
		return nil, err
	}
	out := make(map[int]int)
	for _, r := range recs {
		out[r.Case]++
	}

	return out, nil
}

func (s *Store) scan(ctx context.Context, prefix string) ([]Record, error) {
	var out []Record
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}
			out = append(out, rec)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: scan %s: %w", prefix, err)
	}

	return out, nil
}
