package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/codewithmesree/saiu-learnflow/core"
)

type Course struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Subject       string    `json:"subject"`
	ProfessorID   string    `json:"professorId"`
	ProfessorName string    `json:"professorName"`
	CreatedAt     time.Time `json:"createdAt"`
	StudentIDs    []string  `json:"studentIds"`
}

func (c Course) HasStudent(studentID string) bool {
	for _, id := range c.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name    string `json:"name" validate:"required,min=2"`
	Subject string `json:"subject" validate:"required,min=2"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Subject = core.CleanString(nc.Subject)
	return validate.Struct(nc)
}

type JoinRequest struct {
	Code string `json:"code" validate:"required,min=4,alphanum_"`
}

func (jr *JoinRequest) Validate(validate *validator.Validate) error {
	jr.Code = core.CleanString(jr.Code)
	return validate.Struct(jr)
}
