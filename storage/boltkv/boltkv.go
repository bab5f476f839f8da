package boltkv

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/codewithmesree/saiu-learnflow/core"
)

var bucketName = []byte("learnflow")

// Store keeps every value in a single bucket of a bbolt file.
type Store struct {
	db *bbolt.DB
}

var _ core.KVStore = (*Store)(nil) // interface compliance check

// Open opens (or creates) the bolt file at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating bucket")
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(key string) ([]byte, error) {
	var val []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get([]byte(key))
		if v == nil {
			return core.ErrKeyNotFound
		}
		// v is only valid for the life of the transaction
		val = append([]byte(nil), v...)
		return nil
	})
	return val, err
}

func (s *Store) Put(key string, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put([]byte(key), value)
	})
}

func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete([]byte(key))
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}
