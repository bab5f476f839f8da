package storage

import (
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/storage/boltkv"
	"github.com/codewithmesree/saiu-learnflow/storage/memkv"
	"github.com/codewithmesree/saiu-learnflow/storage/sqlkv"
)

// Store is a core.KVStore holding resources until closed.
type Store interface {
	core.KVStore
	Close() error
}

// Open opens the backend selected by conf.Storage.Driver.
func Open(conf *core.Config) (Store, error) {
	switch conf.Storage.Driver {
	case core.DriverMemory:
		return memkv.Open(), nil
	case core.DriverBolt:
		s, err := boltkv.Open(conf.Storage.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case core.DriverSQLite, core.DriverPostgres:
		s, err := sqlkv.Open(conf.Storage.Driver, conf.Storage.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
