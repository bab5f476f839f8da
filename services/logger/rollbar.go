package logsvc

import (
	"fmt"
	"log"
	"sort"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/course"
	"github.com/codewithmesree/saiu-learnflow/core/schedule"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

// RollbarLogger prints to a standard logger and reports to Rollbar when enabled.
// Users become the Rollbar person; courses and class sessions are reported
// as extras so an item can be traced back to what it touched.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	return &RollbarLogger{std: std}
}

// Enable turns Rollbar reporting on or off. Printing is unaffected.
func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

func courseExtras(c course.Course) map[string]interface{} {
	return map[string]interface{}{"courseId": c.ID, "courseCode": c.Code, "courseName": c.Name}
}

func sessionExtras(s schedule.ClassSession) map[string]interface{} {
	return map[string]interface{}{
		"sessionId": s.ID,
		"courseId":  s.CourseID,
		"slot":      fmt.Sprintf("%s %s-%s", s.Date, s.StartTime, s.EndTime),
	}
}

// prepare turns args into what rollbar.Log expects: the message, the error
// and one extras map. Rollbar keeps only the last map it is given, so every
// map and domain value is merged into a single one; later keys win.
func (l RollbarLogger) prepare(msg string, args []interface{}) []interface{} {
	var usrSet bool
	var extras map[string]interface{}
	merge := func(m map[string]interface{}) {
		if extras == nil {
			extras = make(map[string]interface{}, len(m))
		}
		for k, v := range m {
			extras[k] = v
		}
	}

	newArgs := make([]interface{}, 0, len(args)+1)
	newArgs = append(newArgs, msg)
	for _, arg := range args {
		switch a := arg.(type) {
		case user.User:
			if !usrSet && a.ID != "" { // only set one User
				rollbar.SetPerson(a.ID, a.Name, a.Email)
				usrSet = true
			}
		case course.Course:
			merge(courseExtras(a))
		case schedule.ClassSession:
			merge(sessionExtras(a))
		case map[string]interface{}:
			merge(a)
		default:
			newArgs = append(newArgs, arg)
		}
	}
	if !usrSet {
		rollbar.ClearPerson()
	}
	if extras != nil {
		newArgs = append(newArgs, extras)
	}
	return newArgs
}

func (l RollbarLogger) print(level, msg string, args []interface{}) {
	l.std.Printf("%s: %s", level, msg)
	for _, arg := range args {
		switch a := arg.(type) {
		case user.User:
			l.std.Printf("  user: %s <%s> (%s)", a.ID, a.Email, a.Role)
		case course.Course:
			l.std.Printf("  course: %s %s %q", a.ID, a.Code, a.Name)
		case schedule.ClassSession:
			l.std.Printf("  session: %s course %s on %s %s-%s", a.ID, a.CourseID, a.Date, a.StartTime, a.EndTime)
		case map[string]interface{}:
			keys := make([]string, 0, len(a))
			for k := range a {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				l.std.Printf("  %s: %v", k, a[k])
			}
		default:
			l.std.Printf("  %+v", arg)
		}
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	rollbar.Debug(l.prepare(msg, args)...)
	l.print("DEBUG", msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	rollbar.Info(l.prepare(msg, args)...)
	l.print("INFO", msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	rollbar.Warning(l.prepare(msg, args)...)
	l.print("WARN", msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	rollbar.Error(l.prepare(msg, args)...)
	l.print("ERROR", msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	rollbar.Critical(l.prepare(msg, args)...)
	rollbar.Wait()
	l.print("FATAL", msg, args)
	l.std.Fatal(msg)
}
