package memkv

import (
	"sync"

	"github.com/codewithmesree/saiu-learnflow/core"
)

// Store keeps every value in a map. It backs tests and the TEST environment.
type Store struct {
	sync.RWMutex
	table map[string][]byte
}

var _ core.KVStore = (*Store)(nil) // interface compliance check

func Open() *Store {
	return &Store{table: make(map[string][]byte)}
}

func (s *Store) Get(key string) ([]byte, error) {
	s.RLock()
	defer s.RUnlock()

	val, ok := s.table[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	return append([]byte(nil), val...), nil
}

func (s *Store) Put(key string, value []byte) error {
	s.Lock()
	defer s.Unlock()

	s.table[key] = append([]byte(nil), value...)
	return nil
}

func (s *Store) Delete(key string) error {
	s.Lock()
	defer s.Unlock()

	delete(s.table, key)
	return nil
}

// Keys returns the stored keys in no particular order.
func (s *Store) Keys() []string {
	s.RLock()
	defer s.RUnlock()

	keys := make([]string, 0, len(s.table))
	for k := range s.table {
		keys = append(keys, k)
	}
	return keys
}

func (s *Store) Close() error {
	return nil
}
