package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/course"
	"github.com/codewithmesree/saiu-learnflow/core/schedule"
)

type scheduleApi struct {
	logger    core.Logger
	svc       *schedule.Service
	courseSvc *course.Service
	validate  *validator.Validate
}

func registerScheduleAPI(g *echo.Group, authed echo.MiddlewareFunc, deps ServerDeps) {
	api := scheduleApi{logger: deps.Logger, svc: deps.ScheduleSvc, courseSvc: deps.CourseSvc, validate: deps.Validate}

	g.GET("/schedule", api.mySchedule, authed)
	g.GET("/courses/:id/sessions", api.list, authed)
	g.POST("/courses/:id/sessions", api.create, authed)

	sg := g.Group("/sessions", authed)
	sg.PUT("/:id", api.update)
	sg.DELETE("/:id", api.destroy)
	sg.POST("/:id/cancel", api.cancel)
}

// mySchedule: professors get the sessions they teach, everybody else the sessions of their courses.
func (api *scheduleApi) mySchedule(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var sessions []schedule.ClassSession
	if usr.IsProfessor() {
		sessions, err = api.svc.ListByProfessor(usr.ID)
	} else {
		var courses []course.Course
		if usr.IsStudent() {
			courses, err = api.courseSvc.ListByStudent(usr.ID)
		} else {
			courses, err = api.courseSvc.ListAll()
		}
		if err != nil {
			return errors.Wrap(err, "listing courses")
		}
		sessions, err = api.svc.ListByCourseIDs(course.CourseIDs(courses))
	}
	if err != nil {
		return errors.Wrap(err, "listing class sessions")
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *scheduleApi) list(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	c, err := courseAccess(api.courseSvc, usr, ctx.Param("id"), false)
	if err != nil {
		return err
	}

	sessions, err := api.svc.ListByCourse(c.ID)
	if err != nil {
		return errors.Wrap(err, "listing class sessions")
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *scheduleApi) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	c, err := courseAccess(api.courseSvc, usr, ctx.Param("id"), true)
	if err != nil {
		return err
	}

	var data schedule.NewClassSession
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding new class session")
	}
	data.CourseID = c.ID
	data.CourseName = c.Name
	data.ProfessorID = c.ProfessorID
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	cs, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating class session")
	}
	return ctx.JSON(http.StatusCreated, cs)
}

// load returns the class session in the id path param once usr may manage its course.
func (api *scheduleApi) load(ctx echo.Context) (schedule.ClassSession, error) {
	usr, err := getContextUser(ctx)
	if err != nil {
		return schedule.ClassSession{}, err
	}
	cs, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return schedule.ClassSession{}, err
	}
	if _, err = courseAccess(api.courseSvc, usr, cs.CourseID, true); err != nil {
		return schedule.ClassSession{}, err
	}
	return cs, nil
}

func (api *scheduleApi) update(ctx echo.Context) error {
	cs, err := api.load(ctx)
	if err != nil {
		return err
	}

	var data schedule.UpdateClassSession
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding class session update")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}
	// moving a session to another course needs rights over that course too
	usr, _ := getContextUser(ctx)
	var target *course.Course
	if data.CourseID != nil && *data.CourseID != cs.CourseID {
		c, err := courseAccess(api.courseSvc, usr, *data.CourseID, true)
		if err != nil {
			return err
		}
		data.CourseName = &c.Name
		data.ProfessorID = &c.ProfessorID
		target = &c
	}

	if cs, err = api.svc.Update(cs.ID, data); err != nil {
		return errors.Wrap(err, "updating class session")
	}
	if target != nil {
		api.logger.Info("class session moved", usr, cs, *target)
	}
	return ctx.JSON(http.StatusOK, cs)
}

func (api *scheduleApi) cancel(ctx echo.Context) error {
	cs, err := api.load(ctx)
	if err != nil {
		return err
	}
	if cs, err = api.svc.Cancel(cs.ID); err != nil {
		return errors.Wrap(err, "canceling class session")
	}
	usr, _ := getContextUser(ctx)
	api.logger.Info("class session canceled", usr, cs)
	return ctx.JSON(http.StatusOK, cs)
}

func (api *scheduleApi) destroy(ctx echo.Context) error {
	cs, err := api.load(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(cs.ID); err != nil {
		return errors.Wrap(err, "deleting class session")
	}
	return ctx.NoContent(http.StatusNoContent)
}
