package auth

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

var (
	// errors
	ErrInvalidCredentials = errors.New("Invalid credentials for selected role")
	ErrNotAuthenticated   = errors.New("user not authenticated")
)

// Credentials is what the login form sends.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,role"`
}

// Registration is what the registration forms send.
type Registration struct {
	Name            string `json:"name" validate:"required,notblank"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Department      string `json:"department" validate:"omitempty,department"`
}

// Service is the login/registration facade over the user Service.
// Login and Logout also maintain the current-user cache of a single local client.
type Service struct {
	kv       core.KVStore
	users    *user.Service
	validate *validator.Validate
}

func NewService(kv core.KVStore, users *user.Service, validate *validator.Validate) *Service {
	return &Service{kv: kv, users: users, validate: validate}
}

// Authenticate checks credentials and opens a session. The user is returned without password.
func (svc *Service) Authenticate(c Credentials) (user.User, string, error) {
	c.Email = core.CleanString(c.Email)
	if err := svc.validate.Struct(c); err != nil {
		return user.User{}, "", err
	}

	usr, err := svc.users.ValidateCredentials(c.Email, c.Password, c.Role)
	if err != nil {
		if err == user.ErrNotFound {
			return user.User{}, "", ErrInvalidCredentials
		}
		return user.User{}, "", errors.Wrap(err, "validating credentials")
	}

	sessionID, err := svc.users.CreateSession(usr)
	if err != nil {
		return user.User{}, "", errors.Wrap(err, "creating session")
	}
	return usr.WithoutPassword(), sessionID, nil
}

// Login authenticates and caches the user and its session as the current ones.
func (svc *Service) Login(c Credentials) (user.User, error) {
	usr, sessionID, err := svc.Authenticate(c)
	if err != nil {
		return user.User{}, err
	}
	if err = svc.cache(usr, sessionID); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (svc *Service) cache(usr user.User, sessionID string) error {
	if err := core.WriteValue(svc.kv, core.CurrentUserKey, usr.WithoutPassword()); err != nil {
		return err
	}
	if sessionID == "" {
		return nil
	}
	return core.WriteValue(svc.kv, core.CurrentSessionKey, sessionID)
}

func (svc *Service) register(r Registration, role string) (user.User, error) {
	r.Name = core.CleanString(r.Name)
	r.Email = core.CleanString(r.Email)
	r.Department = core.CleanString(r.Department)
	if err := svc.validate.Struct(r); err != nil {
		return user.User{}, err
	}
	return svc.users.Create(user.NewUser{
		Email:      r.Email,
		Password:   r.Password,
		Role:       role,
		Name:       r.Name,
		Department: r.Department,
	})
}

// Register creates an admin account and caches it as the current user. No session is opened.
func (svc *Service) Register(r Registration) (user.User, error) {
	usr, err := svc.register(r, user.RoleAdmin)
	if err != nil {
		return user.User{}, err
	}
	usr = usr.WithoutPassword()
	if err = svc.cache(usr, ""); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

// RegisterStudent creates a student account on behalf of an admin; the current user is unchanged.
func (svc *Service) RegisterStudent(r Registration) (user.User, error) {
	usr, err := svc.register(r, user.RoleStudent)
	return usr.WithoutPassword(), err
}

// RegisterProfessor creates a professor account on behalf of an admin; the current user is unchanged.
func (svc *Service) RegisterProfessor(r Registration) (user.User, error) {
	usr, err := svc.register(r, user.RoleProfessor)
	return usr.WithoutPassword(), err
}

// Logout ends the cached session and clears the current-user cache.
func (svc *Service) Logout() error {
	var sessionID string
	found, err := core.ReadValue(svc.kv, core.CurrentSessionKey, &sessionID)
	if err != nil {
		return err
	}
	if found {
		if err = svc.users.RemoveSession(sessionID); err != nil {
			return errors.Wrap(err, "removing session")
		}
	}
	for _, key := range []string{core.CurrentUserKey, core.CurrentSessionKey} {
		if err = svc.kv.Delete(key); err != nil {
			return errors.Wrapf(err, "deleting %q", key)
		}
	}
	return nil
}

// EndSession removes a session for callers that hold the id themselves.
func (svc *Service) EndSession(sessionID string) error {
	return svc.users.RemoveSession(sessionID)
}

// CurrentUser returns the cached user. An unreadable cache entry is dropped.
func (svc *Service) CurrentUser() (user.User, error) {
	data, err := svc.kv.Get(core.CurrentUserKey)
	if err != nil {
		if errors.Is(err, core.ErrKeyNotFound) {
			return user.User{}, ErrNotAuthenticated
		}
		return user.User{}, errors.Wrap(err, "reading current user")
	}

	var usr user.User
	if err = json.Unmarshal(data, &usr); err != nil || usr.ID == "" {
		if err = svc.kv.Delete(core.CurrentUserKey); err != nil {
			return user.User{}, errors.Wrap(err, "dropping current user")
		}
		return user.User{}, ErrNotAuthenticated
	}
	return usr, nil
}

// SessionUser resolves a session id to its user, without password.
func (svc *Service) SessionUser(sessionID string) (user.User, error) {
	usr, err := svc.users.ValidateSession(sessionID)
	if err != nil {
		return user.User{}, err
	}
	return usr.WithoutPassword(), nil
}
