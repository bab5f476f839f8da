package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/course"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

type courseApi struct {
	logger   core.Logger
	svc      *course.Service
	userSvc  *user.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, authed echo.MiddlewareFunc, deps ServerDeps) {
	api := courseApi{logger: deps.Logger, svc: deps.CourseSvc, userSvc: deps.UserSvc, validate: deps.Validate}

	cg := g.Group("/courses", authed)
	cg.GET("", api.list)
	cg.POST("", api.create, roleMiddleware(user.RoleProfessor))
	cg.POST("/join", api.join, roleMiddleware(user.RoleStudent))
	cg.GET("/:id", api.retrieve)
	cg.GET("/:id/students", api.listStudents)
}

func (api *courseApi) list(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var courses []course.Course
	switch {
	case usr.IsProfessor():
		courses, err = api.svc.GetByProfessor(usr.ID)
	case usr.IsStudent():
		courses, err = api.svc.ListByStudent(usr.ID)
	default:
		courses, err = api.svc.ListAll()
	}
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var data course.NewCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding new course")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(usr, data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	api.logger.Info("course created", usr, c)
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseApi) join(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}

	var data course.JoinRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding join request")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.JoinByCode(data.Code, usr)
	if err != nil {
		if err == course.ErrInvalidCode {
			return core.NewFieldError("code", err)
		}
		return errors.Wrap(err, "joining course")
	}
	api.logger.Info("student joined course", usr, c)
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	c, err := courseAccess(api.svc, usr, ctx.Param("id"), false)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, c)
}

// listStudents returns the roster; ids of deleted users are skipped.
func (api *courseApi) listStudents(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	c, err := courseAccess(api.svc, usr, ctx.Param("id"), true)
	if err != nil {
		return err
	}

	students := make([]user.User, 0, len(c.StudentIDs))
	for _, id := range c.StudentIDs {
		st, err := api.userSvc.GetByID(id)
		if err != nil {
			if err == user.ErrNotFound {
				continue
			}
			return errors.Wrap(err, "loading student")
		}
		students = append(students, st.WithoutPassword())
	}
	return ctx.JSON(http.StatusOK, students)
}
