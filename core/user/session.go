package user

import (
	"time"

	"github.com/codewithmesree/saiu-learnflow/core"
)

// SessionTTL is fixed; sessions are never extended.
const SessionTTL = 24 * time.Hour

type Session struct {
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

func (svc *Service) sessions() (map[string]Session, error) {
	sessions := make(map[string]Session)
	if _, err := core.ReadValue(svc.kv, core.SessionsKey, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = make(map[string]Session)
	}
	return sessions, nil
}

// CreateSession issues a new session for usr and returns its id.
func (svc *Service) CreateSession(usr User) (string, error) {
	sessions, err := svc.sessions()
	if err != nil {
		return "", err
	}
	id := core.NewID()
	now := core.Now()
	sessions[id] = Session{
		UserID:    usr.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionTTL),
	}
	if err = core.WriteValue(svc.kv, core.SessionsKey, sessions); err != nil {
		return "", err
	}
	return id, nil
}

// ValidateSession returns the user owning session id.
// An expired session is deleted on the way out.
func (svc *Service) ValidateSession(id string) (User, error) {
	sessions, err := svc.sessions()
	if err != nil {
		return User{}, err
	}
	sess, ok := sessions[id]
	if !ok {
		return User{}, ErrInvalidSession
	}
	if sess.Expired(core.Now()) {
		delete(sessions, id)
		if err = core.WriteValue(svc.kv, core.SessionsKey, sessions); err != nil {
			return User{}, err
		}
		return User{}, ErrInvalidSession
	}

	usr, err := svc.GetByID(sess.UserID)
	if err != nil {
		if err == ErrNotFound {
			return User{}, ErrInvalidSession
		}
		return User{}, err
	}
	return usr, nil
}

func (svc *Service) RemoveSession(id string) error {
	sessions, err := svc.sessions()
	if err != nil {
		return err
	}
	if _, ok := sessions[id]; !ok {
		return nil
	}
	delete(sessions, id)
	return core.WriteValue(svc.kv, core.SessionsKey, sessions)
}
