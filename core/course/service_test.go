package course_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/course"
	"github.com/codewithmesree/saiu-learnflow/core/user"
	"github.com/codewithmesree/saiu-learnflow/storage/memkv"
	"github.com/codewithmesree/saiu-learnflow/testutil"
)

var (
	prof    = user.User{ID: "p1", Name: "Dr. Sarah Wilson", Role: user.RoleProfessor}
	prof2   = user.User{ID: "p2", Name: "Dr. Michael Chen", Role: user.RoleProfessor}
	student = user.User{ID: "s1", Name: "John Doe", Role: user.RoleStudent}
)

func setup(t *testing.T) (*course.Service, *memkv.Store) {
	testutil.SequentialIDs(t)
	kv := memkv.Open()
	return course.NewService(kv), kv
}

func createCourse(t *testing.T, svc *course.Service, professor user.User, name string) course.Course {
	c, err := svc.Create(professor, course.NewCourse{Name: name, Subject: "Subject " + name})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return c
}

// mockCodes makes course.GenerateCode return codes in order, then repeat the last one.
func mockCodes(t *testing.T, codes ...string) *int {
	orig := course.GenerateCode
	var calls int
	course.GenerateCode = func() string {
		code := codes[min(calls, len(codes)-1)]
		calls++
		return code
	}
	t.Cleanup(func() { course.GenerateCode = orig })
	return &calls
}

func TestGenerateCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := course.GenerateCode()
		require.Len(t, code, course.CodeLength)
		for _, r := range code {
			if !strings.ContainsRune(course.CodeAlphabet, r) {
				t.Fatalf("GenerateCode() = %q contains %q, outside of the alphabet", code, r)
			}
		}
	}
}

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)

	c := createCourse(t, svc, prof, "Algorithms")
	assert.Equal(t, "id-1", c.ID)
	assert.Equal(t, prof.ID, c.ProfessorID)
	assert.Equal(t, prof.Name, c.ProfessorName)
	assert.NotNil(t, c.StudentIDs)
	assert.Empty(t, c.StudentIDs)
	assert.False(t, c.CreatedAt.IsZero())

	all, err := svc.ListAll()
	require.NoError(t, err)
	assert.Equal(t, []course.Course{c}, all)
}

func TestService_Create_rerollsTakenCodes(t *testing.T) {
	svc, _ := setup(t)

	calls := mockCodes(t, "ABC234")
	first := createCourse(t, svc, prof, "Algorithms")
	assert.Equal(t, "ABC234", first.Code)

	*calls = 0
	course.GenerateCode = func() string {
		*calls++
		if *calls < 4 {
			return "abc234" // collides regardless of case
		}
		return "XYZ987"
	}
	second := createCourse(t, svc, prof, "Databases")
	assert.Equal(t, "XYZ987", second.Code)
	assert.Equal(t, 4, *calls)
}

func TestService_lookups(t *testing.T) {
	svc, _ := setup(t)
	mockCodes(t, "QWE234", "RTY567", "UPA892")
	c1 := createCourse(t, svc, prof, "Algorithms")
	c2 := createCourse(t, svc, prof2, "Machine Learning")
	c3 := createCourse(t, svc, prof, "Databases")

	byProf, err := svc.GetByProfessor(prof.ID)
	require.NoError(t, err)
	assert.Equal(t, []course.Course{c1, c3}, byProf)

	got, err := svc.GetByID(c2.ID)
	require.NoError(t, err)
	assert.Equal(t, c2, got)

	_, err = svc.GetByID("lol")
	assert.Equal(t, course.ErrNotFound, err)

	tests := []struct {
		name    string
		code    string
		want    course.Course
		wantErr error
	}{
		{name: "exact", code: "RTY567", want: c2},
		{name: "lower case", code: "rty567", want: c2},
		{name: "surrounding spaces", code: "  upa892 ", want: c3},
		{name: "unknown", code: "ZZZZZZ", wantErr: course.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetByCode(tt.code)
			if err != tt.wantErr {
				t.Fatalf("GetByCode() error = %v, wantErr %v", err, tt.wantErr)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_JoinByCode(t *testing.T) {
	svc, kv := setup(t)
	mockCodes(t, "QWE234")
	c := createCourse(t, svc, prof, "Algorithms")

	_, err := svc.JoinByCode("NOPE22", student)
	assert.Equal(t, course.ErrInvalidCode, err)
	assert.Equal(t, "Invalid course code", err.Error())

	joined, err := svc.JoinByCode(" qwe234", student)
	require.NoError(t, err)
	assert.Equal(t, []string{student.ID}, joined.StudentIDs)

	// joining again changes nothing
	before, err := kv.Get(core.CoursesKey)
	require.NoError(t, err)
	again, err := svc.JoinByCode("QWE234", student)
	require.NoError(t, err)
	assert.Equal(t, []string{student.ID}, again.StudentIDs)
	after, err := kv.Get(core.CoursesKey)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	other := user.User{ID: "s2", Role: user.RoleStudent}
	_, err = svc.JoinByCode("QWE234", other)
	require.NoError(t, err)

	stored, err := svc.GetByID(c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{student.ID, other.ID}, stored.StudentIDs)

	mine, err := svc.ListByStudent(other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{c.ID}, course.CourseIDs(mine))

	none, err := svc.ListByStudent("nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNewCourse_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	tests := []struct {
		name    string
		nc      course.NewCourse
		wantErr bool
	}{
		{name: "valid", nc: course.NewCourse{Name: "AI", Subject: "CS"}},
		{name: "short name", nc: course.NewCourse{Name: " A ", Subject: "CS"}, wantErr: true},
		{name: "missing subject", nc: course.NewCourse{Name: "Algorithms"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.nc.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJoinRequest_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()

	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "valid", code: "ABC234"},
		{name: "lower case and padded", code: "  abc234 "},
		{name: "too short", code: "AB2", wantErr: true},
		{name: "punctuation", code: "AB-234", wantErr: true},
		{name: "missing", code: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jr := course.JoinRequest{Code: tt.code}
			if err := jr.Validate(validate); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
