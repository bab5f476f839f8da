package schedule

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
)

var ErrNotFound = errors.New("Session not found")

// ClassSession is a scheduled meeting of a course. Date and times are wall-clock values
// (YYYY-MM-DD, HH:MM) with no time zone attached.
type ClassSession struct {
	ID          string     `json:"id"`
	CourseID    string     `json:"courseId"`
	CourseName  string     `json:"courseName"`
	ProfessorID string     `json:"professorId"`
	Subject     string     `json:"subject"`
	Date        string     `json:"date"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	Notes       string     `json:"notes,omitempty"`
	Canceled    bool       `json:"canceled,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

type NewClassSession struct {
	CourseID    string `json:"-"`
	CourseName  string `json:"-"`
	ProfessorID string `json:"-"`
	Subject     string `json:"subject" validate:"required,notblank"`
	Date        string `json:"date" validate:"required,isodate"`
	StartTime   string `json:"startTime" validate:"required,hhmm"`
	EndTime     string `json:"endTime" validate:"required,hhmm"`
	Notes       string `json:"notes"`
}

func (ns *NewClassSession) Validate(validate *validator.Validate) error {
	ns.Subject = core.CleanString(ns.Subject)
	ns.Notes = core.CleanString(ns.Notes)
	return validate.Struct(ns)
}

// UpdateClassSession holds the fields to change. Nil fields are left untouched.
// Canceling goes through Service.Cancel; there is no way back.
// CourseName and ProfessorID follow the target course and are set by the caller on a move.
type UpdateClassSession struct {
	CourseID    *string `json:"courseId"`
	CourseName  *string `json:"-"`
	ProfessorID *string `json:"-"`
	Subject     *string `json:"subject" validate:"omitempty,notblank"`
	Date        *string `json:"date" validate:"omitempty,isodate"`
	StartTime   *string `json:"startTime" validate:"omitempty,hhmm"`
	EndTime     *string `json:"endTime" validate:"omitempty,hhmm"`
	Notes       *string `json:"notes"`
}

func (us *UpdateClassSession) Validate(validate *validator.Validate) error {
	return validate.Struct(us)
}

type Service struct {
	kv core.KVStore
}

func NewService(kv core.KVStore) *Service {
	return &Service{kv: kv}
}

func (svc *Service) all() ([]ClassSession, error) {
	return core.ReadCollection[ClassSession](svc.kv, core.ScheduleKey)
}

func (svc *Service) save(items []ClassSession) error {
	return core.WriteCollection(svc.kv, core.ScheduleKey, items)
}

func (svc *Service) ListByProfessor(professorID string) ([]ClassSession, error) {
	items, err := svc.all()
	if err != nil {
		return nil, err
	}
	return core.Filter(items, func(s ClassSession) bool { return s.ProfessorID == professorID }), nil
}

func (svc *Service) ListByCourse(courseID string) ([]ClassSession, error) {
	items, err := svc.all()
	if err != nil {
		return nil, err
	}
	return core.Filter(items, func(s ClassSession) bool { return s.CourseID == courseID }), nil
}

// ListByCourseIDs returns the sessions of any of the given courses (a student's timetable).
func (svc *Service) ListByCourseIDs(courseIDs []string) ([]ClassSession, error) {
	items, err := svc.all()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(courseIDs))
	for _, id := range courseIDs {
		ids[id] = struct{}{}
	}
	return core.Filter(items, func(s ClassSession) bool {
		_, ok := ids[s.CourseID]
		return ok
	}), nil
}

func (svc *Service) GetByID(id string) (ClassSession, error) {
	items, err := svc.all()
	if err != nil {
		return ClassSession{}, err
	}
	for _, s := range items {
		if s.ID == id {
			return s, nil
		}
	}
	return ClassSession{}, ErrNotFound
}

func (svc *Service) Create(ns NewClassSession) (ClassSession, error) {
	items, err := svc.all()
	if err != nil {
		return ClassSession{}, err
	}
	s := ClassSession{
		ID:          core.NewID(),
		CourseID:    ns.CourseID,
		CourseName:  ns.CourseName,
		ProfessorID: ns.ProfessorID,
		Subject:     ns.Subject,
		Date:        ns.Date,
		StartTime:   ns.StartTime,
		EndTime:     ns.EndTime,
		Notes:       ns.Notes,
		CreatedAt:   core.Now(),
	}
	if err = svc.save(append(items, s)); err != nil {
		return ClassSession{}, err
	}
	return s, nil
}

func (svc *Service) update(id string, apply func(*ClassSession)) (ClassSession, error) {
	items, err := svc.all()
	if err != nil {
		return ClassSession{}, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		apply(&items[i])
		now := core.Now()
		items[i].UpdatedAt = &now
		if err = svc.save(items); err != nil {
			return ClassSession{}, err
		}
		return items[i], nil
	}
	return ClassSession{}, ErrNotFound
}

// Update merges the non-nil fields of us and stamps UpdatedAt. A canceled session stays canceled.
func (svc *Service) Update(id string, us UpdateClassSession) (ClassSession, error) {
	return svc.update(id, func(s *ClassSession) {
		if us.CourseID != nil {
			s.CourseID = *us.CourseID
		}
		if us.CourseName != nil {
			s.CourseName = *us.CourseName
		}
		if us.ProfessorID != nil {
			s.ProfessorID = *us.ProfessorID
		}
		if us.Subject != nil {
			s.Subject = core.CleanString(*us.Subject)
		}
		if us.Date != nil {
			s.Date = *us.Date
		}
		if us.StartTime != nil {
			s.StartTime = *us.StartTime
		}
		if us.EndTime != nil {
			s.EndTime = *us.EndTime
		}
		if us.Notes != nil {
			s.Notes = core.CleanString(*us.Notes)
		}
	})
}

// Cancel marks a session canceled. The session stays listed.
func (svc *Service) Cancel(id string) (ClassSession, error) {
	return svc.update(id, func(s *ClassSession) { s.Canceled = true })
}

func (svc *Service) Delete(id string) error {
	items, err := svc.all()
	if err != nil {
		return err
	}
	return svc.save(core.Filter(items, func(s ClassSession) bool { return s.ID != id }))
}
