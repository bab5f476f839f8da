package announcement

import (
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
)

var ErrNotFound = errors.New("Announcement not found")

type Announcement struct {
	ID         string     `json:"id"`
	CourseID   string     `json:"courseId"`
	AuthorID   string     `json:"authorId"`
	AuthorName string     `json:"authorName"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// NewAnnouncement contains information needed to post an Announcement.
// CourseID and the author fields are set by the caller, not bound from requests.
type NewAnnouncement struct {
	CourseID   string `json:"-"`
	AuthorID   string `json:"-"`
	AuthorName string `json:"-"`
	Content    string `json:"content" validate:"required,min=2"`
}

func (na *NewAnnouncement) Validate(validate *validator.Validate) error {
	na.Content = core.CleanString(na.Content)
	return validate.Struct(na)
}

type UpdateAnnouncement struct {
	Content string `json:"content" validate:"required,min=2"`
}

func (ua *UpdateAnnouncement) Validate(validate *validator.Validate) error {
	ua.Content = core.CleanString(ua.Content)
	return validate.Struct(ua)
}

type Service struct {
	kv core.KVStore
}

func NewService(kv core.KVStore) *Service {
	return &Service{kv: kv}
}

func (svc *Service) all() ([]Announcement, error) {
	return core.ReadCollection[Announcement](svc.kv, core.AnnouncementsKey)
}

func (svc *Service) save(items []Announcement) error {
	return core.WriteCollection(svc.kv, core.AnnouncementsKey, items)
}

// ListByCourse returns the announcements of a course, newest first.
func (svc *Service) ListByCourse(courseID string) ([]Announcement, error) {
	items, err := svc.all()
	if err != nil {
		return nil, err
	}
	items = core.Filter(items, func(a Announcement) bool { return a.CourseID == courseID })
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (svc *Service) GetByID(id string) (Announcement, error) {
	items, err := svc.all()
	if err != nil {
		return Announcement{}, err
	}
	for _, a := range items {
		if a.ID == id {
			return a, nil
		}
	}
	return Announcement{}, ErrNotFound
}

func (svc *Service) Create(na NewAnnouncement) (Announcement, error) {
	items, err := svc.all()
	if err != nil {
		return Announcement{}, err
	}
	a := Announcement{
		ID:         core.NewID(),
		CourseID:   na.CourseID,
		AuthorID:   na.AuthorID,
		AuthorName: na.AuthorName,
		Content:    na.Content,
		CreatedAt:  core.Now(),
	}
	if err = svc.save(append(items, a)); err != nil {
		return Announcement{}, err
	}
	return a, nil
}

// Update replaces the content of an announcement and stamps UpdatedAt.
func (svc *Service) Update(id string, ua UpdateAnnouncement) (Announcement, error) {
	items, err := svc.all()
	if err != nil {
		return Announcement{}, err
	}
	for i, a := range items {
		if a.ID != id {
			continue
		}
		now := core.Now()
		a.Content = ua.Content
		a.UpdatedAt = &now
		items[i] = a
		if err = svc.save(items); err != nil {
			return Announcement{}, err
		}
		return a, nil
	}
	return Announcement{}, ErrNotFound
}

// Delete removes an announcement. Deleting an unknown id is not an error.
func (svc *Service) Delete(id string) error {
	items, err := svc.all()
	if err != nil {
		return err
	}
	return svc.save(core.Filter(items, func(a Announcement) bool { return a.ID != id }))
}
