// Package digeststore persists the write cache's path → digest index in a
// badger database so that warm incremental builds survive process restarts.
// The in-memory index stays authoritative; this store is a write-through
// layer consulted only on a cold miss.
package digeststore

import (
	"fmt"
	"sync/atomic"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger

// StoreConfig configures a Store.
type StoreConfig struct {
	// Path is the directory for the badger database. Created if missing.
	Path string
	// MinimumFreeGB refuses to open the store when the volume holding Path
	// has less free space than this.
	MinimumFreeGB int
	// Logger is an optional structured logger. If nil, a default is used.
	Logger *logrus.Logger
}

// Store wraps a badger DB holding digest entries.
type Store struct {
	config       StoreConfig
	badgerDB     *badger.DB
	readCounter  uint64
	writeCounter uint64
}

// NewStore opens (or creates) the digest database at config.Path.
func NewStore(config StoreConfig) (*Store, error) {
	if config.Logger == nil {
		config.Logger = logrus.New()
	}
	log = config.Logger

	if config.Path == "" {
		return nil, fmt.Errorf("digeststore: path must not be empty")
	}
	if err := checkFreeSpace(config.Path, config.MinimumFreeGB); err != nil {
		return nil, fmt.Errorf("error checking disk space for digest store: %w", err)
	}

	opts := badger.DefaultOptions(config.Path)
	opts.Logger = nil
	opts.SyncWrites = false

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("error opening digest store at %s: %w", config.Path, err)
	}

	return &Store{
		config:   config,
		badgerDB: db,
	}, nil
}

// Lookup returns the persisted digest for path. A miss is not an error.
func (s *Store) Lookup(path string) (string, bool, error) {
	atomic.AddUint64(&s.readCounter, 1)

	var digest string
	err := s.badgerDB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(path))
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		digest = string(value)
		return nil
	})
	if err == badger.ErrKeyNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error reading digest for %s: %w", path, err)
	}
	return digest, true, nil
}

// Store persists digest for path, replacing any previous entry.
func (s *Store) Store(path string, digest string) error {
	atomic.AddUint64(&s.writeCounter, 1)

	err := s.badgerDB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(path), []byte(digest))
	})
	if err != nil {
		return fmt.Errorf("error writing digest for %s: %w", path, err)
	}
	return nil
}

// Counters returns the number of lookups and stores since open.
func (s *Store) Counters() (reads, writes uint64) {
	return atomic.LoadUint64(&s.readCounter), atomic.LoadUint64(&s.writeCounter)
}

// Close syncs the database, runs value-log GC and closes it.
func (s *Store) Close() error {
	if err := s.badgerDB.Sync(); err != nil {
		return fmt.Errorf("error syncing digest store: %w", err)
	}

	if err := s.badgerDB.RunValueLogGC(0.1); err != nil && err != badger.ErrNoRewrite {
		return fmt.Errorf("error cleaning digest store: %w", err)
	}

	return s.badgerDB.Close()
}
