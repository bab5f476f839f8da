package sqlkv_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/storage/sqlkv"
	"github.com/codewithmesree/saiu-learnflow/testutil"
)

func openStore(t *testing.T, path string) *sqlkv.Store {
	s, err := sqlkv.Open(core.DriverSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("sqlkv.Open() failed: %v", err)
	}
	return s
}

func TestStore(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "kv.sqlite"))
	defer s.Close()

	testutil.TestKVStore(t, s)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.sqlite")

	s := openStore(t, path)
	require.NoError(t, s.Put("learnflow_courses", []byte(`[]`)))
	require.NoError(t, s.Close())

	// migrations already applied: opening again is a no-op for the schema
	s = openStore(t, path)
	defer s.Close()
	got, err := s.Get("learnflow_courses")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestStore_Migrate(t *testing.T) {
	s := openStore(t, filepath.Join(t.TempDir(), "kv.sqlite"))
	defer s.Close()

	tests := []struct {
		name    string
		command string
		wantErr bool
	}{
		{name: "status", command: "status"},
		{name: "version", command: "version"},
		{name: "down", command: "down"},
		{name: "up", command: "up"},
		{name: "redo", command: "redo"},
		{name: "unknown", command: "lol", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Migrate(tt.command); (err != nil) != tt.wantErr {
				t.Errorf("Migrate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	require.NoError(t, s.Put("k", []byte("v")), "table must exist after redo")
}
