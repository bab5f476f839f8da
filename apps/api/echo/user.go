package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/auth"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

var errConfirmRequired = core.NewFieldError("confirm", errors.New("set confirm=true to delete every user and session"))

type userApi struct {
	logger   core.Logger
	svc      *user.Service
	authSvc  *auth.Service
	validate *validator.Validate
}

func registerUserAPI(g *echo.Group, authed echo.MiddlewareFunc, deps ServerDeps) {
	api := userApi{logger: deps.Logger, svc: deps.UserSvc, authSvc: deps.AuthSvc, validate: deps.Validate}

	ug := g.Group("/users", authed, roleMiddleware(user.RoleAdmin))
	ug.GET("", api.query)
	ug.DELETE("", api.clearData)
	ug.GET("/roles", api.listRoles)
	ug.POST("/students", api.createStudent)
	ug.POST("/professors", api.createProfessor)
	ug.GET("/:id", api.retrieve)
	ug.PUT("/:id", api.update)
	ug.DELETE("/:id", api.destroy)
}

func withoutPasswords(users []user.User) []user.User {
	res := make([]user.User, len(users))
	for i, u := range users {
		res[i] = u.WithoutPassword()
	}
	return res
}

func (api *userApi) query(ctx echo.Context) error {
	var filter user.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding user filter")
	}

	users, err := api.svc.Filter(filter)
	if err != nil {
		return errors.Wrap(err, "filtering users")
	}
	return ctx.JSON(http.StatusOK, withoutPasswords(users))
}

func (api *userApi) listRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.Roles)
}

func (api *userApi) createStudent(ctx echo.Context) error {
	return api.create(ctx, api.authSvc.RegisterStudent)
}

func (api *userApi) createProfessor(ctx echo.Context) error {
	return api.create(ctx, api.authSvc.RegisterProfessor)
}

func (api *userApi) create(ctx echo.Context, register func(auth.Registration) (user.User, error)) error {
	var reg auth.Registration
	if err := ctx.Bind(&reg); err != nil {
		return errors.Wrap(err, "binding registration")
	}

	usr, err := register(reg)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *userApi) retrieve(ctx echo.Context) error {
	usr, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr.WithoutPassword())
}

func (api *userApi) update(ctx echo.Context) error {
	var data user.UpdateUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding user update")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Update(ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr.WithoutPassword())
}

func (api *userApi) destroy(ctx echo.Context) error {
	deleted, err := api.svc.Delete(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	if !deleted {
		return user.ErrNotFound
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *userApi) clearData(ctx echo.Context) error {
	if ctx.QueryParam("confirm") != "true" {
		return errConfirmRequired
	}
	if err := api.svc.ClearAllData(); err != nil {
		return errors.Wrap(err, "clearing data")
	}

	usr, _ := getContextUser(ctx)
	api.logger.Warn("all user data cleared", usr)
	return ctx.NoContent(http.StatusNoContent)
}
