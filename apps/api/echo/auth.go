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

type (
	authApi struct {
		logger   core.Logger
		svc      *auth.Service
		validate *validator.Validate
	}

	loginResponse struct {
		User      user.User `json:"user"`
		SessionID string    `json:"sessionId"`
	}
)

func registerAuthAPI(g *echo.Group, authed echo.MiddlewareFunc, deps ServerDeps) {
	api := authApi{logger: deps.Logger, svc: deps.AuthSvc, validate: deps.Validate}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	// Open self-registration creates admins without any credentials.
	// It exists for the demo flow only and must not be exposed in production.
	ag.POST("/register", api.register)
	ag.POST("/logout", api.logout, authed)
	ag.GET("/me", api.me, authed)
}

func (api *authApi) login(ctx echo.Context) error {
	var creds auth.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return errors.Wrap(err, "binding credentials")
	}

	usr, sessionID, err := api.svc.Authenticate(creds)
	if err != nil {
		return err
	}
	api.logger.Info("user logged in", usr)
	return ctx.JSON(http.StatusOK, loginResponse{User: usr, SessionID: sessionID})
}

func (api *authApi) register(ctx echo.Context) error {
	var reg auth.Registration
	if err := ctx.Bind(&reg); err != nil {
		return errors.Wrap(err, "binding registration")
	}

	usr, err := api.svc.Register(reg)
	if err != nil {
		return err
	}
	api.logger.Warn("admin self-registered", usr)
	return ctx.JSON(http.StatusCreated, usr)
}

func (api *authApi) logout(ctx echo.Context) error {
	if err := api.svc.EndSession(getContextSession(ctx)); err != nil {
		return errors.Wrap(err, "ending session")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *authApi) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}
