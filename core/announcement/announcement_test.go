package announcement_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmesree/saiu-learnflow/core/announcement"
	"github.com/codewithmesree/saiu-learnflow/storage/memkv"
	"github.com/codewithmesree/saiu-learnflow/testutil"
)

func TestService(t *testing.T) {
	testutil.SequentialIDs(t)
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	advance := testutil.FreezeTime(t, t0)
	svc := announcement.NewService(memkv.Open())

	post := func(courseID, content string) announcement.Announcement {
		a, err := svc.Create(announcement.NewAnnouncement{CourseID: courseID, AuthorID: "p1", AuthorName: "Prof", Content: content})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		advance(time.Minute)
		return a
	}
	first := post("c1", "Welcome")
	other := post("c2", "Other course")
	second := post("c1", "Quiz on Friday")

	t.Run("list newest first", func(t *testing.T) {
		got, err := svc.ListByCourse("c1")
		require.NoError(t, err)
		assert.Equal(t, []announcement.Announcement{second, first}, got)
		assert.Nil(t, first.UpdatedAt)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := svc.Update(first.ID, announcement.UpdateAnnouncement{Content: "Welcome all"})
		require.NoError(t, err)
		assert.Equal(t, "Welcome all", updated.Content)
		assert.Equal(t, first.CreatedAt, updated.CreatedAt)
		if assert.NotNil(t, updated.UpdatedAt) {
			assert.Equal(t, t0.Add(3*time.Minute), *updated.UpdatedAt)
		}

		stored, err := svc.GetByID(first.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, stored)
	})

	t.Run("update unknown", func(t *testing.T) {
		_, err := svc.Update("lol", announcement.UpdateAnnouncement{Content: "x"})
		assert.Equal(t, announcement.ErrNotFound, err)
		assert.Equal(t, "Announcement not found", err.Error())
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(second.ID))
		require.NoError(t, svc.Delete("lol"))

		got, err := svc.ListByCourse("c1")
		require.NoError(t, err)
		assert.Len(t, got, 1)
		got, err = svc.ListByCourse(other.CourseID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestNewAnnouncement_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "valid", content: "Hi"},
		{name: "too short", content: " H ", wantErr: true},
		{name: "empty", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			na := announcement.NewAnnouncement{Content: tt.content}
			if err := na.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
