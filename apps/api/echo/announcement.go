package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core/announcement"
	"github.com/codewithmesree/saiu-learnflow/core/course"
)

type announcementApi struct {
	svc       *announcement.Service
	courseSvc *course.Service
	validate  *validator.Validate
}

func registerAnnouncementAPI(g *echo.Group, authed echo.MiddlewareFunc, deps ServerDeps) {
	api := announcementApi{svc: deps.AnnouncementSvc, courseSvc: deps.CourseSvc, validate: deps.Validate}

	g.GET("/courses/:id/announcements", api.list, authed)
	g.POST("/courses/:id/announcements", api.create, authed)

	ag := g.Group("/announcements", authed)
	ag.PUT("/:id", api.update)
	ag.DELETE("/:id", api.destroy)
}

func (api *announcementApi) list(ctx echo.Context) error {
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
		return errors.Wrap(err, "listing announcements")
	}
	return ctx.JSON(http.StatusOK, items)
}

func (api *announcementApi) create(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	c, err := courseAccess(api.courseSvc, usr, ctx.Param("id"), true)
	if err != nil {
		return err
	}

	var data announcement.NewAnnouncement
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding new announcement")
	}
	data.CourseID = c.ID
	data.AuthorID = usr.ID
	data.AuthorName = usr.Name
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating announcement")
	}
	return ctx.JSON(http.StatusCreated, a)
}

// load returns the announcement in the id path param once usr may manage its course.
func (api *announcementApi) load(ctx echo.Context) (announcement.Announcement, error) {
	usr, err := getContextUser(ctx)
	if err != nil {
		return announcement.Announcement{}, err
	}
	a, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return announcement.Announcement{}, err
	}
	if _, err = courseAccess(api.courseSvc, usr, a.CourseID, true); err != nil {
		return announcement.Announcement{}, err
	}
	return a, nil
}

func (api *announcementApi) update(ctx echo.Context) error {
	a, err := api.load(ctx)
	if err != nil {
		return err
	}

	var data announcement.UpdateAnnouncement
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding announcement update")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if a, err = api.svc.Update(a.ID, data); err != nil {
		return errors.Wrap(err, "updating announcement")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *announcementApi) destroy(ctx echo.Context) error {
	a, err := api.load(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(a.ID); err != nil {
		return errors.Wrap(err, "deleting announcement")
	}
	return ctx.NoContent(http.StatusNoContent)
}
