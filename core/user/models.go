package user

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/codewithmesree/saiu-learnflow/core"
)

// Roles
const (
	RoleAdmin     = "admin"
	RoleProfessor = "professor"
	RoleStudent   = "student"
)

var (
	AllRoles = []string{RoleAdmin, RoleProfessor, RoleStudent}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Professor", Value: RoleProfessor},
		{Name: "Admin", Value: RoleAdmin},
	}

	Departments = []string{
		"School of Computing and Data Science",
		"School of Arts and Sciences",
		"School of Law",
		"School of Business",
		"School of AI",
		"School of Media",
		"School of Technology",
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"password,omitempty"`
	Role       string    `json:"role"`
	Name       string    `json:"name"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"createdAt"` // UTC
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) IsProfessor() bool {
	return u.Role == RoleProfessor
}

func (u User) IsStudent() bool {
	return u.Role == RoleStudent
}

// WithoutPassword returns a copy of u that is safe to cache or serve.
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	Role       string `json:"role" validate:"required,role"`
	Name       string `json:"name" validate:"required,notblank"`
	Department string `json:"department" validate:"omitempty,department"`
}

func (nu *NewUser) Clean() {
	nu.Email = core.CleanString(nu.Email)
	nu.Name = core.CleanString(nu.Name)
	nu.Department = core.CleanString(nu.Department)
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Clean()
	return validate.Struct(nu)
}

// UpdateUser defines what information may be provided to modify an existing User.
// Nil fields are left untouched.
type UpdateUser struct {
	Email      *string `json:"email" validate:"omitempty,email"`
	Password   *string `json:"password" validate:"omitempty,min=1"`
	Role       *string `json:"role" validate:"omitempty,role"`
	Name       *string `json:"name" validate:"omitempty,notblank"`
	Department *string `json:"department" validate:"omitempty,department"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	return validate.Struct(uu)
}

// QueryFilter narrows a user listing. Search matches name, email or department.
type QueryFilter struct {
	Search string `query:"search"`
	Role   string `query:"role"`
}
