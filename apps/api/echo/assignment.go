package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/assignment"
	"github.com/codewithmesree/saiu-learnflow/core/course"
	"github.com/codewithmesree/saiu-learnflow/core/submission"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

type assignmentApi struct {
	svc           *assignment.Service
	courseSvc     *course.Service
	submissionSvc *submission.Service
	validate      *validator.Validate
}

func registerAssignmentAPI(g *echo.Group, authed echo.MiddlewareFunc, deps ServerDeps) {
	api := assignmentApi{
		svc:           deps.AssignmentSvc,
		courseSvc:     deps.CourseSvc,
		submissionSvc: deps.SubmissionSvc,
		validate:      deps.Validate,
	}

	g.GET("/courses/:id/assignments", api.list, authed)
	g.POST("/courses/:id/assignments", api.create, authed)

	ag := g.Group("/assignments", authed)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
	ag.GET("/:id/submissions", api.listSubmissions)
	ag.POST("/:id/submissions", api.submit, roleMiddleware(user.RoleStudent))

	sg := g.Group("/submissions", authed)
	sg.GET("", api.mySubmissions, roleMiddleware(user.RoleStudent))
	sg.PUT("/:id", api.grade)
}

func (api *assignmentApi) list(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	c, err := courseAccess(api.courseSvc, usr, ctx.Param("id"), false)
	if err != nil {
		return err
	}

	items, err := api.svc.ListByCourse(c.ID)
	if err != nil {
		return errors.Wrap(err, "listing assignments")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *assignmentApi) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	c, err := courseAccess(api.courseSvc, usr, ctx.Param("id"), true)
	if err != nil {
		return err
	}

	var data assignment.NewAssignment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding new assignment")
	}
	data.CourseID = c.ID
	data.AuthorID = usr.ID
	data.AuthorName = usr.Name
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return ctx.JSON(http.StatusCreated, a)
}

// load returns the assignment in the id path param and its course, once usr may view (or manage) it.
func (api *assignmentApi) load(ctx echo.Context, manage bool) (assignment.Assignment, course.Course, error) {
	usr, err := getContextUser(ctx)
	if err != nil {
		return assignment.Assignment{}, course.Course{}, err
	}
	a, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return assignment.Assignment{}, course.Course{}, err
	}
	c, err := courseAccess(api.courseSvc, usr, a.CourseID, manage)
	if err != nil {
		return assignment.Assignment{}, course.Course{}, err
	}
	return a, c, nil
}

func (api *assignmentApi) update(ctx echo.Context) error {
	a, _, err := api.load(ctx, true)
	if err != nil {
		return err
	}

	var data assignment.UpdateAssignment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding assignment update")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if a, err = api.svc.Update(a.ID, data); err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	a, _, err := api.load(ctx, true)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(a.ID); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// listSubmissions shows every submission to course managers, and students only their own.
func (api *assignmentApi) listSubmissions(ctx echo.Context) error {
	a, c, err := api.load(ctx, false)
	if err != nil {
		return err
	}

	subs, err := api.submissionSvc.ListByAssignment(a.ID)
	if err != nil {
		return errors.Wrap(err, "listing submissions")
	}
	usr, _ := getContextUser(ctx)
	if !canManage(usr, c) {
		subs = core.Filter(subs, func(s submission.Submission) bool { return s.StudentID == usr.ID })
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *assignmentApi) submit(ctx echo.Context) error {
	a, c, err := api.load(ctx, false)
	if err != nil {
		return err
	}
	usr, _ := getContextUser(ctx)

	var data submission.NewSubmission
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding new submission")
	}
	data.AssignmentID = a.ID
	data.CourseID = c.ID
	data.StudentID = usr.ID
	data.StudentName = usr.Name
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	sub, err := api.submissionSvc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating submission")
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *assignmentApi) mySubmissions(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	subs, err := api.submissionSvc.ListByStudent(usr.ID)
	if err != nil {
		return errors.Wrap(err, "listing submissions")
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *assignmentApi) grade(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	sub, err := api.submissionSvc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	if _, err = courseAccess(api.courseSvc, usr, sub.CourseID, true); err != nil {
		return err
	}

	var data submission.UpdateSubmission
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding grade")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if sub, err = api.submissionSvc.Update(sub.ID, data); err != nil {
		return errors.Wrap(err, "grading submission")
	}
	return ctx.JSON(http.StatusOK, sub)
}
