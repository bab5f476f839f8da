package echoapi

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core/auth"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

const (
	contextUserKey    = "user"
	contextSessionKey = "sessionId"
	bearerPrefix      = "Bearer "
)

// sessionMiddleware resolves the "Authorization: Bearer <sessionId>" header to a user.
func sessionMiddleware(svc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				return errMissingSession
			}
			sessionID := strings.TrimSpace(header[len(bearerPrefix):])
			if sessionID == "" {
				return errMissingSession
			}

			usr, err := svc.SessionUser(sessionID)
			if err != nil {
				if err == user.ErrInvalidSession {
					return err
				}
				return errors.Wrap(err, "validating session")
			}
			ctx.Set(contextUserKey, usr)
			ctx.Set(contextSessionKey, sessionID)
			return next(ctx)
		}
	}
}

// roleMiddleware only lets users holding one of roles through.
func roleMiddleware(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx)
			if err != nil {
				return err
			}
			for _, role := range roles {
				if usr.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

func getContextUser(ctx echo.Context) (user.User, error) {
	if usr, ok := ctx.Get(contextUserKey).(user.User); ok {
		return usr, nil
	}
	return user.User{}, errUnauthorized
}

func getContextSession(ctx echo.Context) string {
	id, _ := ctx.Get(contextSessionKey).(string)
	return id
}
