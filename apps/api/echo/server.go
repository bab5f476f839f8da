package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/announcement"
	"github.com/codewithmesree/saiu-learnflow/core/assignment"
	"github.com/codewithmesree/saiu-learnflow/core/auth"
	"github.com/codewithmesree/saiu-learnflow/core/course"
	"github.com/codewithmesree/saiu-learnflow/core/schedule"
	"github.com/codewithmesree/saiu-learnflow/core/submission"
	"github.com/codewithmesree/saiu-learnflow/core/user"
)

type (
	ServerDeps struct {
		Conf            *core.Config
		Logger          core.Logger
		Validate        *validator.Validate
		Translator      ut.Translator
		AuthSvc         *auth.Service
		UserSvc         *user.Service
		CourseSvc       *course.Service
		AnnouncementSvc *announcement.Service
		AssignmentSvc   *assignment.Service
		SubmissionSvc   *submission.Service
		ScheduleSvc     *schedule.Service
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal

		// the stores read-modify-write whole collections: one request at a time
		storeMu sync.Mutex
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)

	v1 := s.app.Group("/v1", s.serialize)
	authed := sessionMiddleware(s.deps.AuthSvc)

	registerAuthAPI(v1, authed, s.deps)
	registerUserAPI(v1, authed, s.deps)
	registerCourseAPI(v1, authed, s.deps)
	registerAnnouncementAPI(v1, authed, s.deps)
	registerAssignmentAPI(v1, authed, s.deps)
	registerScheduleAPI(v1, authed, s.deps)
}

// serialize runs one request at a time against the stores.
func (s *Server) serialize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		s.storeMu.Lock()
		defer s.storeMu.Unlock()
		return next(ctx)
	}
}

func (s *Server) signalShutdown() {
	s.shutdown <- syscall.SIGSTOP
}

func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
