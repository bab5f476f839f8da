package submission

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
)

var ErrNotFound = errors.New("Submission not found")

// Submission is one uploaded answer. A student may submit an assignment more than once.
type Submission struct {
	ID             string    `json:"id"`
	AssignmentID   string    `json:"assignmentId"`
	CourseID       string    `json:"courseId"`
	StudentID      string    `json:"studentId"`
	StudentName    string    `json:"studentName"`
	FileName       string    `json:"fileName"`
	FileType       string    `json:"fileType"`
	FileDataBase64 string    `json:"fileDataBase64"`
	SubmittedAt    time.Time `json:"submittedAt"`
	Grade          *float64  `json:"grade,omitempty"`
	Feedback       *string   `json:"feedback,omitempty"`
}

func (s Submission) Graded() bool {
	return s.Grade != nil
}

type NewSubmission struct {
	AssignmentID   string `json:"-"`
	CourseID       string `json:"-"`
	StudentID      string `json:"-"`
	StudentName    string `json:"-"`
	FileName       string `json:"fileName" validate:"required"`
	FileType       string `json:"fileType"`
	FileDataBase64 string `json:"fileDataBase64" validate:"required,datauri"`
}

func (ns *NewSubmission) Validate(validate *validator.Validate) error {
	return validate.Struct(ns)
}

// UpdateSubmission grades a submission. Nil fields are left untouched.
type UpdateSubmission struct {
	Grade    *float64 `json:"grade" validate:"omitempty,gte=0"`
	Feedback *string  `json:"feedback"`
}

func (us *UpdateSubmission) Validate(validate *validator.Validate) error {
	return validate.Struct(us)
}

type Service struct {
	kv core.KVStore
}

func NewService(kv core.KVStore) *Service {
	return &Service{kv: kv}
}

func (svc *Service) all() ([]Submission, error) {
	return core.ReadCollection[Submission](svc.kv, core.SubmissionsKey)
}

func (svc *Service) save(items []Submission) error {
	return core.WriteCollection(svc.kv, core.SubmissionsKey, items)
}

func (svc *Service) ListByAssignment(assignmentID string) ([]Submission, error) {
	items, err := svc.all()
	if err != nil {
		return nil, err
	}
	return core.Filter(items, func(s Submission) bool { return s.AssignmentID == assignmentID }), nil
}

func (svc *Service) ListByStudent(studentID string) ([]Submission, error) {
	items, err := svc.all()
	if err != nil {
		return nil, err
	}
	return core.Filter(items, func(s Submission) bool { return s.StudentID == studentID }), nil
}

// HasSubmitted reports whether the student submitted the assignment at least once.
func (svc *Service) HasSubmitted(assignmentID, studentID string) (bool, error) {
	items, err := svc.all()
	if err != nil {
		return false, err
	}
	for _, s := range items {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (svc *Service) GetByID(id string) (Submission, error) {
	items, err := svc.all()
	if err != nil {
		return Submission{}, err
	}
	for _, s := range items {
		if s.ID == id {
			return s, nil
		}
	}
	return Submission{}, ErrNotFound
}

func (svc *Service) Create(ns NewSubmission) (Submission, error) {
	items, err := svc.all()
	if err != nil {
		return Submission{}, err
	}
	s := Submission{
		ID:             core.NewID(),
		AssignmentID:   ns.AssignmentID,
		CourseID:       ns.CourseID,
		StudentID:      ns.StudentID,
		StudentName:    ns.StudentName,
		FileName:       ns.FileName,
		FileType:       ns.FileType,
		FileDataBase64: ns.FileDataBase64,
		SubmittedAt:    core.Now(),
	}
	if err = svc.save(append(items, s)); err != nil {
		return Submission{}, err
	}
	return s, nil
}

// Update merges the non-nil fields of us. Submissions carry no update stamp.
func (svc *Service) Update(id string, us UpdateSubmission) (Submission, error) {
	items, err := svc.all()
	if err != nil {
		return Submission{}, err
	}
	for i, s := range items {
		if s.ID != id {
			continue
		}
		if us.Grade != nil {
			g := *us.Grade
			s.Grade = &g
		}
		if us.Feedback != nil {
			f := *us.Feedback
			s.Feedback = &f
		}
		items[i] = s
		if err = svc.save(items); err != nil {
			return Submission{}, err
		}
		return s, nil
	}
	return Submission{}, ErrNotFound
}
