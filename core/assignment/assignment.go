package assignment

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
)

var ErrNotFound = errors.New("Assignment not found")

type Assignment struct {
	ID             string     `json:"id"`
	CourseID       string     `json:"courseId"`
	AuthorID       string     `json:"authorId"`
	AuthorName     string     `json:"authorName"`
	Message        string     `json:"message"`
	FileName       string     `json:"fileName"`
	FileType       string     `json:"fileType"`
	FileDataBase64 string     `json:"fileDataBase64"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty"`
	DueAt          time.Time  `json:"dueAt"`
}

// NewAssignment contains information needed to post an Assignment.
type NewAssignment struct {
	CourseID       string    `json:"-"`
	AuthorID       string    `json:"-"`
	AuthorName     string    `json:"-"`
	Message        string    `json:"message" validate:"required,min=2"`
	FileName       string    `json:"fileName" validate:"required_with=FileDataBase64"`
	FileType       string    `json:"fileType"`
	FileDataBase64 string    `json:"fileDataBase64" validate:"omitempty,datauri"`
	DueAt          time.Time `json:"dueAt" validate:"required"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Message = core.CleanString(na.Message)
	return validate.Struct(na)
}

// UpdateAssignment holds the fields to change. Nil fields are left untouched.
type UpdateAssignment struct {
	Message        *string    `json:"message" validate:"omitempty,min=2"`
	FileName       *string    `json:"fileName" validate:"required_with=FileDataBase64"`
	FileType       *string    `json:"fileType"`
	FileDataBase64 *string    `json:"fileDataBase64" validate:"omitempty,datauri"`
	DueAt          *time.Time `json:"dueAt"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	return validate.Struct(ua)
}

type Service struct {
	kv core.KVStore
}

func NewService(kv core.KVStore) *Service {
	return &Service{kv: kv}
}

func (svc *Service) all() ([]Assignment, error) {
	return core.ReadCollection[Assignment](svc.kv, core.AssignmentsKey)
}

func (svc *Service) save(items []Assignment) error {
	return core.WriteCollection(svc.kv, core.AssignmentsKey, items)
}

// ListByCourse returns the assignments of a course, newest first.
func (svc *Service) ListByCourse(courseID string) ([]Assignment, error) {
	items, err := svc.all()
	if err != nil {
		return nil, err
	}
	items = core.Filter(items, func(a Assignment) bool { return a.CourseID == courseID })
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (svc *Service) GetByID(id string) (Assignment, error) {
	items, err := svc.all()
	if err != nil {
		return Assignment{}, err
	}
	for _, a := range items {
		if a.ID == id {
			return a, nil
		}
	}
	return Assignment{}, ErrNotFound
}

func (svc *Service) Create(na NewAssignment) (Assignment, error) {
	items, err := svc.all()
	if err != nil {
		return Assignment{}, err
	}
	a := Assignment{
		ID:             core.NewID(),
		CourseID:       na.CourseID,
		AuthorID:       na.AuthorID,
		AuthorName:     na.AuthorName,
		Message:        na.Message,
		FileName:       na.FileName,
		FileType:       na.FileType,
		FileDataBase64: na.FileDataBase64,
		CreatedAt:      core.Now(),
		DueAt:          na.DueAt.UTC(),
	}
	if err = svc.save(append(items, a)); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

// Update merges the non-nil fields of ua and stamps UpdatedAt.
func (svc *Service) Update(id string, ua UpdateAssignment) (Assignment, error) {
	items, err := svc.all()
	if err != nil {
		return Assignment{}, err
	}
	for i, a := range items {
		if a.ID != id {
			continue
		}
		if ua.Message != nil {
			a.Message = core.CleanString(*ua.Message)
		}
		if ua.FileName != nil {
			a.FileName = *ua.FileName
		}
		if ua.FileType != nil {
			a.FileType = *ua.FileType
		}
		if ua.FileDataBase64 != nil {
			a.FileDataBase64 = *ua.FileDataBase64
		}
		if ua.DueAt != nil {
			a.DueAt = ua.DueAt.UTC()
		}
		now := core.Now()
		a.UpdatedAt = &now
		items[i] = a
		if err = svc.save(items); err != nil {
			return Assignment{}, err
		}
		return a, nil
	}
	return Assignment{}, ErrNotFound
}

// Delete removes an assignment. Its submissions are kept.
func (svc *Service) Delete(id string) error {
	items, err := svc.all()
	if err != nil {
		return err
	}
	return svc.save(core.Filter(items, func(a Assignment) bool { return a.ID != id }))
}
