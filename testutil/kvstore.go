package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmesree/saiu-learnflow/core"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TestKVStore runs the behaviour every core.KVStore backend must share.
func TestKVStore(t *testing.T, kv core.KVStore) {
	t.Run("missing key", func(t *testing.T) {
		_, err := kv.Get("missing")
		assert.ErrorIs(t, err, core.ErrKeyNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		require.NoError(t, kv.Put("k1", []byte(`{"a":1}`)))
		got, err := kv.Get("k1")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(got))
	})

	t.Run("put overwrites", func(t *testing.T) {
		require.NoError(t, kv.Put("k2", []byte("first")))
		require.NoError(t, kv.Put("k2", []byte("second")))
		got, err := kv.Get("k2")
		require.NoError(t, err)
		assert.Equal(t, "second", string(got))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, kv.Put("k3", []byte("v")))
		require.NoError(t, kv.Delete("k3"))
		_, err := kv.Get("k3")
		assert.ErrorIs(t, err, core.ErrKeyNotFound)
		assert.NoError(t, kv.Delete("k3"), "deleting a missing key is not an error")
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		require.NoError(t, kv.Put("k4", []byte("abc")))
		got, err := kv.Get("k4")
		require.NoError(t, err)
		got[0] = 'z'
		again, err := kv.Get("k4")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})

	t.Run("collections", func(t *testing.T) {
		empty, err := core.ReadCollection[record](kv, "records")
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		want := []record{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}
		require.NoError(t, core.WriteCollection(kv, "records", want))
		got, err := core.ReadCollection[record](kv, "records")
		require.NoError(t, err)
		assert.Equal(t, want, got)

		require.NoError(t, core.WriteCollection[record](kv, "records", nil))
		raw, err := kv.Get("records")
		require.NoError(t, err)
		assert.Equal(t, "[]", string(raw))
	})

	t.Run("corrupt collection", func(t *testing.T) {
		require.NoError(t, kv.Put("broken", []byte("{not json")))
		_, err := core.ReadCollection[record](kv, "broken")
		assert.Error(t, err)
	})
}
