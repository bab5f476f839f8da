package core

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Storage keys. Each holds one whole JSON document.
const (
	UsersKey          = "learnflow_users"
	SessionsKey       = "learnflow_sessions"
	CoursesKey        = "learnflow_courses"
	AnnouncementsKey  = "learnflow_announcements"
	AssignmentsKey    = "learnflow_assignments"
	SubmissionsKey    = "learnflow_submissions"
	ScheduleKey       = "learnflow_schedule"
	CurrentUserKey    = "user"
	CurrentSessionKey = "sessionId"
)

// ErrKeyNotFound is returned by KVStore.Get for absent keys.
var ErrKeyNotFound = errors.New("key not found")

// KVStore persists whole serialized values under string keys.
// Implementations are safe for concurrent calls, but nothing spans two calls:
// a read-modify-write over a collection is not atomic.
type KVStore interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// ReadValue decodes the JSON stored under key into v.
// found is false (and v untouched) when the key does not exist.
func ReadValue(kv KVStore, key string, v interface{}) (found bool, err error) {
	data, err := kv.Get(key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return false, nil
		}
		return false, errors.Wrapf(err, "reading %q", key)
	}
	if err = json.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "decoding %q", key)
	}
	return true, nil
}

// WriteValue replaces the value stored under key with the JSON encoding of v.
func WriteValue(kv KVStore, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %q", key)
	}
	return errors.Wrapf(kv.Put(key, data), "writing %q", key)
}

// ReadCollection returns the whole collection stored under key; an absent key is an empty collection.
func ReadCollection[T any](kv KVStore, key string) ([]T, error) {
	var items []T
	if _, err := ReadValue(kv, key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}

// WriteCollection replaces the whole collection stored under key.
func WriteCollection[T any](kv KVStore, key string, items []T) error {
	if items == nil {
		items = make([]T, 0) // "[]", never "null"
	}
	return WriteValue(kv, key, items)
}

// Filter returns the items for which keep returns true, in their original order.
func Filter[T any](items []T, keep func(T) bool) []T {
	res := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			res = append(res, item)
		}
	}
	return res
}
