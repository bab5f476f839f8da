package course

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

var (
	// errors
	ErrNotFound    = errors.New("course not found")
	ErrInvalidCode = errors.New("Invalid course code")
)

type Service struct {
	kv core.KVStore
}

func NewService(kv core.KVStore) *Service {
	return &Service{kv: kv}
}

func (svc *Service) ListAll() ([]Course, error) {
	return core.ReadCollection[Course](svc.kv, core.CoursesKey)
}

func (svc *Service) save(courses []Course) error {
	return core.WriteCollection(svc.kv, core.CoursesKey, courses)
}

// Create adds a course owned by professor, under a code no other course uses.
func (svc *Service) Create(professor user.User, nc NewCourse) (Course, error) {
	courses, err := svc.ListAll()
	if err != nil {
		return Course{}, err
	}
	c := Course{
		ID:            core.NewID(),
		Code:          uniqueCode(courses),
		Name:          core.CleanString(nc.Name),
		Subject:       core.CleanString(nc.Subject),
		ProfessorID:   professor.ID,
		ProfessorName: professor.Name,
		CreatedAt:     core.Now(),
		StudentIDs:    make([]string, 0),
	}
	if err = svc.save(append(courses, c)); err != nil {
		return Course{}, err
	}
	return c, nil
}

func (svc *Service) GetByProfessor(professorID string) ([]Course, error) {
	courses, err := svc.ListAll()
	if err != nil {
		return nil, err
	}
	return core.Filter(courses, func(c Course) bool { return c.ProfessorID == professorID }), nil
}

// ListByStudent returns the courses the student has joined.
func (svc *Service) ListByStudent(studentID string) ([]Course, error) {
	courses, err := svc.ListAll()
	if err != nil {
		return nil, err
	}
	return core.Filter(courses, func(c Course) bool { return c.HasStudent(studentID) }), nil
}

func (svc *Service) GetByID(id string) (Course, error) {
	courses, err := svc.ListAll()
	if err != nil {
		return Course{}, err
	}
	for _, c := range courses {
		if c.ID == id {
			return c, nil
		}
	}
	return Course{}, ErrNotFound
}

// GetByCode finds a course by code, ignoring case and surrounding whitespace.
func (svc *Service) GetByCode(code string) (Course, error) {
	courses, err := svc.ListAll()
	if err != nil {
		return Course{}, err
	}
	code = NormalizeCode(code)
	for _, c := range courses {
		if strings.ToUpper(c.Code) == code {
			return c, nil
		}
	}
	return Course{}, ErrNotFound
}

// JoinByCode enrolls student in the course identified by code. Joining twice is a no-op.
func (svc *Service) JoinByCode(code string, student user.User) (Course, error) {
	courses, err := svc.ListAll()
	if err != nil {
		return Course{}, err
	}
	code = NormalizeCode(code)
	for i, c := range courses {
		if strings.ToUpper(c.Code) != code {
			continue
		}
		if c.HasStudent(student.ID) {
			return c, nil
		}
		c.StudentIDs = append(c.StudentIDs, student.ID)
		courses[i] = c
		if err = svc.save(courses); err != nil {
			return Course{}, err
		}
		return c, nil
	}
	return Course{}, ErrInvalidCode
}

// CourseIDs returns the ids of courses, in order.
func CourseIDs(courses []Course) []string {
	ids := make([]string, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	return ids
}
