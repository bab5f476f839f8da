package user

import "golang.org/x/crypto/bcrypt"

// PasswordHasher turns plain passwords into their stored form and checks candidates against it.
type PasswordHasher interface {
	Hash(pwd string) (string, error)
	Compare(stored, pwd string) bool
}

// PlainText stores passwords as given. This is the demo default: stored records stay
// readable by the admin panel and the seeded accounts work out of the box.
type PlainText struct{}

func (PlainText) Hash(pwd string) (string, error) { return pwd, nil }

func (PlainText) Compare(stored, pwd string) bool { return stored == pwd }

// Bcrypt stores bcrypt hashes.
type Bcrypt struct {
	Cost int // bcrypt.DefaultCost when zero
}

func (b Bcrypt) Hash(pwd string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (Bcrypt) Compare(stored, pwd string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pwd)) == nil
}

// NewHasher returns Bcrypt when hashing is enabled, PlainText otherwise.
func NewHasher(hashPasswords bool) PasswordHasher {
	if hashPasswords {
		return Bcrypt{}
	}
	return PlainText{}
}
