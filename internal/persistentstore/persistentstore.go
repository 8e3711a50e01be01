package persistentstore

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// This package implements a persistent map, which is preserved across invocations in a YAML file.
// The survey uses it as an extraction cache: file MD5 => extracted metadata record, so that
// unchanged files do not need the extractor to be run again.
// The key needs to be a comparable type (as the underlying representation is a map).
// The stored data can be any type that yaml.v2 can marshal.

// The Store type records the persistent data and tracks whether the data has been modified
type Store[K comparable, T any] struct {
	filename string
	active   bool    // True if the store is backed by a file
	dirty    bool    // True if the store has been modified (and should be written out)
	data     map[K]T // key => stored-data
	log      logrus.FieldLogger
}

// Open initialises a store from a YAML file.
// If the file does not exist it is created when createIfMissing is set, otherwise an error is returned.
// An empty filename gives an inactive, memory-only store whose Save does nothing.
func Open[K comparable, T any](filename string, createIfMissing bool, log logrus.FieldLogger) (*Store[K, T], error) {
	store := &Store[K, T]{filename: filename, data: make(map[K]T), log: log}
	if filename == "" {
		return store, nil
	}

	file, err := os.ReadFile(filename)
	if err != nil {
		if !os.IsNotExist(err) || !createIfMissing {
			return store, errors.Wrapf(err, "opening store %s", filename)
		}
		if err := os.WriteFile(filename, nil, 0644); err != nil {
			// Store file does not exist and cannot be created
			return store, errors.Wrapf(err, "creating store %s", filename)
		}
		log.WithField("store", filename).Info("created empty store file")
	}
	store.active = true

	if err := yaml.Unmarshal(file, &store.data); err != nil {
		return store, errors.Wrapf(err, "unmarshalling store %s", filename)
	}
	if store.data == nil {
		// an empty document unmarshals to a nil map
		store.data = make(map[K]T)
	}
	log.WithField("store", filename).Debugf("initial number of store entries: %d", len(store.data))
	return store, nil
}

// Lookup retrieves the data (if any) stored against the given key.
// The return mimics that returned by a map, i.e. the value and a boolean true if the key exists.
func (s *Store[K, T]) Lookup(key K) (T, bool) {
	value, found := s.data[key]
	return value, found
}

// Len returns the number of entries in the store.
func (s *Store[K, T]) Len() int {
	return len(s.data)
}

// Returns true if the store has been modified and false otherwise
func (s *Store[K, T]) IsModified() bool {
	return s.dirty
}

// Update replaces the data stored against key.
func (s *Store[K, T]) Update(key K, data T) {
	s.data[key] = data
	s.dirty = true
}

// Save writes the store back to its file as YAML, if it has changed.
func (s *Store[K, T]) Save() error {
	if !s.active || !s.dirty {
		return nil
	}
	data, err := yaml.Marshal(s.data)
	if err != nil {
		return errors.Wrap(err, "marshalling store")
	}
	if err := os.WriteFile(s.filename, data, 0644); err != nil {
		return errors.Wrapf(err, "writing store %s", s.filename)
	}
	s.log.WithField("store", s.filename).Debugf("wrote %d store entries", len(s.data))
	s.dirty = false
	return nil
}
