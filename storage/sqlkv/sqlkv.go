package sqlkv

import (
	"database/sql"
	"embed"
	"io"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/codewithmesree/saiu-learnflow/core"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

var (
	pingAttempts = 10
	gooseLogger  = log.New(io.Discard, "", 0)
)

// Store keeps every value as one row of the kv_store table.
type Store struct {
	db     *sqlx.DB
	driver string

	getQuery    string
	putQuery    string
	deleteQuery string
}

var _ core.KVStore = (*Store)(nil) // interface compliance check

// Open connects to a sqlite3 or postgres database and applies pending migrations.
func Open(driver, dsn string) (*Store, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if driver == core.DriverSQLite {
		db.SetMaxOpenConns(1) // a single writer avoids "database is locked"
	}
	if err = ping(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db:          db,
		driver:      driver,
		getQuery:    db.Rebind("SELECT item_value FROM kv_store WHERE item_key = ?"),
		putQuery:    db.Rebind("INSERT INTO kv_store (item_key, item_value) VALUES (?, ?) ON CONFLICT (item_key) DO UPDATE SET item_value = excluded.item_value"),
		deleteQuery: db.Rebind("DELETE FROM kv_store WHERE item_key = ?"),
	}
	if err = s.Migrate("up"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sql.DB) error {
	var err error
	for attempts := 1; attempts <= pingAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migrate runs a goose command (up, down, redo, reset, status, version, ...) against the embedded migrations.
func (s *Store) Migrate(command string, args ...string) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger)
	if err := goose.SetDialect(s.driver); err != nil {
		return errors.Wrap(err, "setting migration dialect")
	}
	if err := goose.Run(command, s.db.DB, migrationsDir, args...); err != nil {
		return errors.Wrapf(err, "migrate %s", command)
	}
	return nil
}

func (s *Store) Get(key string) ([]byte, error) {
	var val string
	if err := s.db.Get(&val, s.getQuery, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrap(err, "selecting value")
	}
	return []byte(val), nil
}

func (s *Store) Put(key string, value []byte) error {
	_, err := s.db.Exec(s.putQuery, key, string(value))
	return errors.Wrap(err, "upserting value")
}

func (s *Store) Delete(key string) error {
	_, err := s.db.Exec(s.deleteQuery, key)
	return errors.Wrap(err, "deleting value")
}

func (s *Store) Close() error {
	return s.db.Close()
}
