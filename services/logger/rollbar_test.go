package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/course"
	"github.com/codewithmesree/saiu-learnflow/core/schedule"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

func newTestLogger() (*RollbarLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST", Build: "test"})
	logger.Enable(false)
	return logger, &buf
}

var (
	testCourse  = course.Course{ID: "c1", Code: "ABC234", Name: "Algebra", ProfessorID: "p1"}
	testSession = schedule.ClassSession{ID: "s1", CourseID: "c1", Date: "2024-03-04", StartTime: "09:00", EndTime: "10:30"}
)

func TestRollbarLogger_print(t *testing.T) {
	logger, buf := newTestLogger()
	usr := user.User{ID: "u1", Email: "ann@test.cd", Name: "Ann", Role: user.RoleStudent}

	tests := []struct {
		name string
		log  func(msg string, args ...interface{})
		args []interface{}
		want string
	}{
		{name: "info", log: logger.Info, want: "INFO: hello\n"},
		{name: "warn with data", log: logger.Warn, args: []interface{}{map[string]interface{}{"path": "/x", "method": "GET"}}, want: "WARN: hello\n  method: GET\n  path: /x\n"},
		{name: "error with user", log: logger.Error, args: []interface{}{errors.New("boom"), usr}, want: "ERROR: hello\n  boom\n  user: u1 <ann@test.cd> (student)\n"},
		{name: "course", log: logger.Info, args: []interface{}{testCourse}, want: "INFO: hello\n  course: c1 ABC234 \"Algebra\"\n"},
		{name: "session", log: logger.Info, args: []interface{}{testSession}, want: "INFO: hello\n  session: s1 course c1 on 2024-03-04 09:00-10:30\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log("hello", tt.args...)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRollbarLogger_prepare(t *testing.T) {
	logger, _ := newTestLogger()
	err := errors.New("boom")

	tests := []struct {
		name string
		args []interface{}
		want []interface{}
	}{
		{
			name: "users are reported as the person",
			args: []interface{}{user.User{ID: "u1", Name: "Ann"}, err, user.User{ID: "u2"}},
			want: []interface{}{"msg", err},
		},
		{
			name: "course becomes extras",
			args: []interface{}{testCourse},
			want: []interface{}{"msg", map[string]interface{}{"courseId": "c1", "courseCode": "ABC234", "courseName": "Algebra"}},
		},
		{
			name: "session and data are merged",
			args: []interface{}{err, testSession, map[string]interface{}{"path": "/x"}},
			want: []interface{}{"msg", err, map[string]interface{}{
				"sessionId": "s1", "courseId": "c1", "slot": "2024-03-04 09:00-10:30", "path": "/x",
			}},
		},
		{
			name: "later keys win",
			args: []interface{}{testSession, testCourse, map[string]interface{}{"courseId": "c9"}},
			want: []interface{}{"msg", map[string]interface{}{
				"sessionId": "s1", "slot": "2024-03-04 09:00-10:30",
				"courseId": "c9", "courseCode": "ABC234", "courseName": "Algebra",
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, logger.prepare("msg", tt.args))
		})
	}
}
