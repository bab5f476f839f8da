package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

// FreezeTime pins core.NowFunc to at and returns a func that moves the clock forward.
// The real clock is restored when the test ends.
func FreezeTime(t *testing.T, at time.Time) (advance func(time.Duration)) {
	t.Helper()
	orig := core.NowFunc
	now := at
	core.NowFunc = func() time.Time { return now }
	t.Cleanup(func() { core.NowFunc = orig })
	return func(d time.Duration) { now = now.Add(d) }
}

// SequentialIDs makes core.NewID return "id-1", "id-2", ... until the test ends.
func SequentialIDs(t *testing.T) {
	t.Helper()
	orig := core.NewID
	var n int
	core.NewID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() { core.NewID = orig })
}

// NewValidator returns a validator with every custom tag registered, and its translator.
func NewValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	return validate, translator
}

func CreateUser(t *testing.T, svc *user.Service, name, email, pwd, role string) user.User {
	t.Helper()
	usr, err := svc.Create(user.NewUser{
		Email:      email,
		Password:   pwd,
		Role:       role,
		Name:       name,
		Department: user.Departments[0],
	})
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func Ptr[T any](v T) *T {
	return &v
}
