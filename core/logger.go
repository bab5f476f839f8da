package core

// Logger is implemented by services/logger. Args may carry an error, extra data
// (map[string]interface{}), the acting user.User and the course.Course or
// schedule.ClassSession being acted on.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}
