package submission_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmesree/saiu-learnflow/core/submission"
	"github.com/codewithmesree/saiu-learnflow/storage/memkv"
	"github.com/codewithmesree/saiu-learnflow/testutil"
)

const doc = "data:application/pdf;base64,JVBERi0xLjQK"

func TestService(t *testing.T) {
	testutil.SequentialIDs(t)
	svc := submission.NewService(memkv.Open())

	submit := func(assignmentID, studentID string) submission.Submission {
		s, err := svc.Create(submission.NewSubmission{
			AssignmentID: assignmentID, CourseID: "c1", StudentID: studentID, StudentName: "Student " + studentID,
			FileName: "answer.pdf", FileType: "application/pdf", FileDataBase64: doc,
		})
		if err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		return s
	}
	s1 := submit("a1", "s1")
	s2 := submit("a1", "s2")
	s3 := submit("a2", "s1")
	resubmit := submit("a1", "s1")

	assert.False(t, s1.SubmittedAt.IsZero())
	assert.False(t, s1.Graded())

	byAssignment, err := svc.ListByAssignment("a1")
	require.NoError(t, err)
	assert.Equal(t, []submission.Submission{s1, s2, resubmit}, byAssignment)

	byStudent, err := svc.ListByStudent("s1")
	require.NoError(t, err)
	assert.Equal(t, []submission.Submission{s1, s3, resubmit}, byStudent)

	tests := []struct {
		name         string
		assignmentID string
		studentID    string
		want         bool
	}{
		{name: "submitted", assignmentID: "a2", studentID: "s1", want: true},
		{name: "not submitted", assignmentID: "a2", studentID: "s2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.HasSubmitted(tt.assignmentID, tt.studentID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("grade then feedback", func(t *testing.T) {
		graded, err := svc.Update(s2.ID, submission.UpdateSubmission{Grade: testutil.Ptr(87.5)})
		require.NoError(t, err)
		assert.True(t, graded.Graded())
		assert.Nil(t, graded.Feedback)

		commented, err := svc.Update(s2.ID, submission.UpdateSubmission{Feedback: testutil.Ptr("Nice work")})
		require.NoError(t, err)
		if assert.NotNil(t, commented.Grade) {
			assert.Equal(t, 87.5, *commented.Grade)
		}
		if assert.NotNil(t, commented.Feedback) {
			assert.Equal(t, "Nice work", *commented.Feedback)
		}
		assert.Equal(t, s2.SubmittedAt, commented.SubmittedAt)
		assert.Equal(t, s2.FileDataBase64, commented.FileDataBase64)

		stored, err := svc.GetByID(s2.ID)
		require.NoError(t, err)
		assert.Equal(t, commented, stored)
	})

	t.Run("update unknown", func(t *testing.T) {
		_, err := svc.Update("lol", submission.UpdateSubmission{Grade: testutil.Ptr(1.0)})
		assert.Equal(t, submission.ErrNotFound, err)
	})
}

func TestUpdateSubmission_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	tests := []struct {
		name    string
		us      submission.UpdateSubmission
		wantErr bool
	}{
		{name: "empty", us: submission.UpdateSubmission{}},
		{name: "zero grade", us: submission.UpdateSubmission{Grade: testutil.Ptr(0.0)}},
		{name: "negative grade", us: submission.UpdateSubmission{Grade: testutil.Ptr(-1.0)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.us.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
