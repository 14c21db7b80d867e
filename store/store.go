// Package store persists current-level tables and batch simulation
// outputs in a bolt database.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/op/go-logging"

	bolt "go.etcd.io/bbolt"
)

// log is the global logging variable.
var log = logging.MustGetLogger("store")

// Bucket names.
var (
	TABLES  = []byte("tables")
	BATCHES = []byte("batches")
)

// Batch is a list of source sequences and the parallel list of their
// simulated signals. Order is preserved; the two slices always have
// the same length.
type Batch struct {
	Sequences []string    `json:"sequences"`
	Signals   [][]float64 `json:"signals"`
}

// Store wraps a bolt database.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) a store at the given path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveTable stores a level table under a name. The table is saved as
// a flat k-mer string to level mapping; key order inside the mapping
// carries no meaning since the index is recoverable from the string.
func (s *Store) SaveTable(name string, table map[string]float64) error {
	data, err := json.Marshal(table)
	if err != nil {
		log.Error("Error serializing level table", err)
		return err
	}
	return s.save(TABLES, []byte(name), data)
}

// LoadTable loads a level table by name. A missing table is an
// error.
func (s *Store) LoadTable(name string) (map[string]float64, error) {
	data, err := s.load(TABLES, []byte(name))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("no level table named %q", name)
	}
	var table map[string]float64
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// SaveBatch stores a simulation batch under a name.
func (s *Store) SaveBatch(name string, batch *Batch) error {
	if len(batch.Sequences) != len(batch.Signals) {
		return fmt.Errorf("batch has %v sequences but %v signals",
			len(batch.Sequences), len(batch.Signals))
	}
	data, err := json.Marshal(batch)
	if err != nil {
		log.Error("Error serializing batch", err)
		return err
	}
	return s.save(BATCHES, []byte(name), data)
}

// LoadBatch loads a simulation batch by name.
func (s *Store) LoadBatch(name string) (*Batch, error) {
	data, err := s.load(BATCHES, []byte(name))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("no batch named %q", name)
	}
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// save puts a value in a bucket.
func (s *Store) save(bucket, key, data []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucket)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

// load gets a value from a bucket; a missing bucket or key yields a
// nil slice.
func (s *Store) load(bucket, key []byte) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		v := b.Get(key)
		if v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}
