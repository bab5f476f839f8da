package user

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrEmailExists    = errors.New("Email already registered")
	ErrInvalidSession = errors.New("session invalid or expired")
)

// DefaultAdmin is seeded the first time the user collection is read.
var DefaultAdmin = User{
	ID:         "1",
	Email:      "admin@learnflow.com",
	Password:   "admin123",
	Role:       RoleAdmin,
	Name:       "System Administrator",
	Department: "School of Computing and Data Science",
}

// Service manages users and their sessions. Every call reads and rewrites whole collections,
// so callers must not run two mutating calls concurrently.
type Service struct {
	kv     core.KVStore
	hasher PasswordHasher
}

// NewService returns a user Service over kv. A nil hasher stores plain text passwords.
func NewService(kv core.KVStore, hasher PasswordHasher) *Service {
	if hasher == nil {
		hasher = PlainText{}
	}
	return &Service{kv: kv, hasher: hasher}
}

func (svc *Service) save(users []User) error {
	return core.WriteCollection(svc.kv, core.UsersKey, users)
}

// GetAll returns every user, seeding DefaultAdmin when no user collection exists yet.
func (svc *Service) GetAll() ([]User, error) {
	var users []User
	found, err := core.ReadValue(svc.kv, core.UsersKey, &users)
	if err != nil {
		return nil, err
	}
	if found {
		if users == nil {
			users = make([]User, 0)
		}
		return users, nil
	}

	admin := DefaultAdmin
	if admin.Password, err = svc.hasher.Hash(admin.Password); err != nil {
		return nil, errors.Wrap(err, "hashing default admin password")
	}
	admin.CreatedAt = core.Now()
	users = []User{admin}
	if err = svc.save(users); err != nil {
		return nil, err
	}
	return users, nil
}

func emailTaken(users []User, email string, excludedID string) bool {
	email = core.CleanString(email, true /* lower */)
	for _, u := range users {
		if u.ID != excludedID && strings.ToLower(u.Email) == email {
			return true
		}
	}
	return false
}

func errEmailExists() error {
	return core.NewFieldError("email", ErrEmailExists)
}

// IsEmailTaken reports whether a user already has email, ignoring case.
func (svc *Service) IsEmailTaken(email string) (bool, error) {
	users, err := svc.GetAll()
	if err != nil {
		return false, err
	}
	return emailTaken(users, email, ""), nil
}

// Create adds a user. The returned record includes the stored password.
func (svc *Service) Create(nu NewUser) (User, error) {
	users, err := svc.GetAll()
	if err != nil {
		return User{}, err
	}
	if emailTaken(users, nu.Email, "") {
		return User{}, errEmailExists()
	}

	pwd, err := svc.hasher.Hash(nu.Password)
	if err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	usr := User{
		ID:         core.NewID(),
		Email:      core.CleanString(nu.Email),
		Password:   pwd,
		Role:       nu.Role,
		Name:       core.CleanString(nu.Name),
		Department: core.CleanString(nu.Department),
		CreatedAt:  core.Now(),
	}
	if err = svc.save(append(users, usr)); err != nil {
		return User{}, err
	}
	return usr, nil
}

// ValidateCredentials returns the user matching email (any case), password and role exactly.
func (svc *Service) ValidateCredentials(email, pwd, role string) (User, error) {
	users, err := svc.GetAll()
	if err != nil {
		return User{}, err
	}
	email = core.CleanString(email, true /* lower */)
	for _, u := range users {
		if strings.ToLower(u.Email) == email && u.Role == role && svc.hasher.Compare(u.Password, pwd) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (svc *Service) GetByID(id string) (User, error) {
	users, err := svc.GetAll()
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// GetByEmail finds a user by email, ignoring case.
func (svc *Service) GetByEmail(email string) (User, error) {
	users, err := svc.GetAll()
	if err != nil {
		return User{}, err
	}
	email = core.CleanString(email, true /* lower */)
	for _, u := range users {
		if strings.ToLower(u.Email) == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

// Update merges the non-nil fields of uu into the user identified by id.
func (svc *Service) Update(id string, uu UpdateUser) (User, error) {
	users, err := svc.GetAll()
	if err != nil {
		return User{}, err
	}
	idx := -1
	for i, u := range users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return User{}, ErrNotFound
	}

	usr := users[idx]
	if uu.Email != nil {
		if emailTaken(users, *uu.Email, id) {
			return User{}, errEmailExists()
		}
		usr.Email = core.CleanString(*uu.Email)
	}
	if uu.Password != nil {
		if usr.Password, err = svc.hasher.Hash(*uu.Password); err != nil {
			return User{}, errors.Wrap(err, "hashing password")
		}
	}
	if uu.Role != nil {
		usr.Role = *uu.Role
	}
	if uu.Name != nil {
		usr.Name = core.CleanString(*uu.Name)
	}
	if uu.Department != nil {
		usr.Department = core.CleanString(*uu.Department)
	}

	users[idx] = usr
	if err = svc.save(users); err != nil {
		return User{}, err
	}
	return usr, nil
}

// Delete removes the user identified by id. It reports whether a user was removed.
// Sessions and course memberships of the user are left as they are.
func (svc *Service) Delete(id string) (bool, error) {
	users, err := svc.GetAll()
	if err != nil {
		return false, err
	}
	kept := core.Filter(users, func(u User) bool { return u.ID != id })
	if len(kept) == len(users) {
		return false, nil
	}
	return true, svc.save(kept)
}

func (svc *Service) GetByRole(role string) ([]User, error) {
	users, err := svc.GetAll()
	if err != nil {
		return nil, err
	}
	return core.Filter(users, func(u User) bool { return u.Role == role }), nil
}

// Search does a case-insensitive substring match on name, email or department.
func (svc *Service) Search(query string) ([]User, error) {
	users, err := svc.GetAll()
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	return core.Filter(users, func(u User) bool {
		return strings.Contains(strings.ToLower(u.Name), q) ||
			strings.Contains(strings.ToLower(u.Email), q) ||
			strings.Contains(strings.ToLower(u.Department), q)
	}), nil
}

// Filter applies the role and search criteria of f together.
func (svc *Service) Filter(f QueryFilter) ([]User, error) {
	users, err := svc.Search(f.Search)
	if err != nil {
		return nil, err
	}
	if f.Role == "" {
		return users, nil
	}
	return core.Filter(users, func(u User) bool { return u.Role == f.Role }), nil
}

// ClearAllData wipes users, sessions and the current-user cache.
// The default admin is seeded again on the next read.
func (svc *Service) ClearAllData() error {
	for _, key := range []string{core.UsersKey, core.SessionsKey, core.CurrentUserKey, core.CurrentSessionKey} {
		if err := svc.kv.Delete(key); err != nil {
			return errors.Wrapf(err, "deleting %q", key)
		}
	}
	return nil
}
