package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/announcement"
	"github.com/codewithmesree/saiu-learnflow/core/assignment"
	"github.com/codewithmesree/saiu-learnflow/core/auth"
	"github.com/codewithmesree/saiu-learnflow/core/course"
	"github.com/codewithmesree/saiu-learnflow/core/schedule"
	"github.com/codewithmesree/saiu-learnflow/core/submission"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

var (
	errMissingSession = echo.NewHTTPError(http.StatusUnauthorized, "missing or malformed session")
	errUnauthorized   = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpForbidden  = echo.NewHTTPError(http.StatusForbidden, "permission denied")

	// domain errors the client can act upon
	clientErrors = map[error]int{
		auth.ErrInvalidCredentials: http.StatusBadRequest,
		auth.ErrNotAuthenticated:   http.StatusUnauthorized,
		user.ErrInvalidSession:     http.StatusUnauthorized,
		user.ErrNotFound:           http.StatusNotFound,
		course.ErrNotFound:         http.StatusNotFound,
		announcement.ErrNotFound:   http.StatusNotFound,
		assignment.ErrNotFound:     http.StatusNotFound,
		submission.ErrNotFound:     http.StatusNotFound,
		schedule.ErrNotFound:       http.StatusNotFound,
	}
)

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if fldErrs := origErr.FieldMap(); fldErrs != nil {
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			if status, ok := clientErrorStatus(err); ok {
				code = status
				message = origErr.Error()
				break
			}

			// any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg

			usr, _ := getContextUser(ctx)
			req := ctx.Request()
			logger.Error(msg, errors.Wrap(err, msg), usr, map[string]interface{}{
				"method": req.Method,
				"path":   req.URL.Path,
			})

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func clientErrorStatus(err error) (int, bool) {
	for sentinel, status := range clientErrors {
		if errors.Is(err, sentinel) {
			return status, true
		}
	}
	return 0, false
}
