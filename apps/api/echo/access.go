package echoapi

import (
	"github.com/codewithmesree/saiu-learnflow/core/course"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

// canView: admins see every course, professors their own, students the ones they joined.
func canView(usr user.User, c course.Course) bool {
	switch {
	case usr.IsAdmin():
		return true
	case usr.IsProfessor():
		return c.ProfessorID == usr.ID
	case usr.IsStudent():
		return c.HasStudent(usr.ID)
	}
	return false
}

// canManage: posting and editing course content is for the owning professor and admins.
func canManage(usr user.User, c course.Course) bool {
	return usr.IsAdmin() || (usr.IsProfessor() && c.ProfessorID == usr.ID)
}

// courseAccess loads a course and checks usr against it.
func courseAccess(svc *course.Service, usr user.User, courseID string, manage bool) (course.Course, error) {
	c, err := svc.GetByID(courseID)
	if err != nil {
		return course.Course{}, err
	}
	allowed := canView(usr, c)
	if manage {
		allowed = canManage(usr, c)
	}
	if !allowed {
		return course.Course{}, errHttpForbidden
	}
	return c, nil
}
