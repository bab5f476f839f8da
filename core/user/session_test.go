package user_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/user"
	"github.com/codewithmesree/saiu-learnflow/testutil"
)

func TestService_sessions(t *testing.T) {
	svc, kv := setup(t)
	advance := testutil.FreezeTime(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	ann := testutil.CreateUser(t, svc, "Ann", "ann@test.cd", "pwd", user.RoleStudent)

	id, err := svc.CreateSession(ann)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	var stored map[string]user.Session
	_, err = core.ReadValue(kv, core.SessionsKey, &stored)
	require.NoError(t, err)
	assert.Equal(t, stored[id].CreatedAt.Add(24*time.Hour), stored[id].ExpiresAt)

	tests := []struct {
		name    string
		advance time.Duration
		wantErr error
	}{
		{name: "fresh", advance: 0},
		{name: "just before expiry", advance: 24*time.Hour - time.Millisecond},
		{name: "at expiry", advance: time.Millisecond},
		{name: "expired", advance: time.Millisecond, wantErr: user.ErrInvalidSession},
		{name: "purged", advance: 0, wantErr: user.ErrInvalidSession},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advance(tt.advance)
			usr, err := svc.ValidateSession(id)
			if err != tt.wantErr {
				t.Fatalf("ValidateSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				assert.Equal(t, ann.ID, usr.ID)
			}
		})
	}

	stored = nil
	_, err = core.ReadValue(kv, core.SessionsKey, &stored)
	require.NoError(t, err)
	assert.NotContains(t, stored, id)
}

func TestService_ValidateSession_unknownOrDeletedUser(t *testing.T) {
	svc, _ := setup(t)
	ann := testutil.CreateUser(t, svc, "Ann", "ann@test.cd", "pwd", user.RoleStudent)

	_, err := svc.ValidateSession("lol")
	assert.Equal(t, user.ErrInvalidSession, err)

	id, err := svc.CreateSession(ann)
	require.NoError(t, err)
	_, err = svc.Delete(ann.ID)
	require.NoError(t, err)
	_, err = svc.ValidateSession(id)
	assert.Equal(t, user.ErrInvalidSession, err)
}

func TestService_RemoveSession(t *testing.T) {
	svc, _ := setup(t)
	ann := testutil.CreateUser(t, svc, "Ann", "ann@test.cd", "pwd", user.RoleStudent)

	id1, err := svc.CreateSession(ann)
	require.NoError(t, err)
	id2, err := svc.CreateSession(ann)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSession(id1))
	require.NoError(t, svc.RemoveSession("lol"))

	_, err = svc.ValidateSession(id1)
	assert.Equal(t, user.ErrInvalidSession, err)
	_, err = svc.ValidateSession(id2)
	assert.NoError(t, err)
}
