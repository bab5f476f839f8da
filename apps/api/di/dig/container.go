package dig_container

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/codewithmesree/saiu-learnflow/apps/api/echo"
	"github.com/codewithmesree/saiu-learnflow/core"
	"github.com/codewithmesree/saiu-learnflow/core/announcement"
	"github.com/codewithmesree/saiu-learnflow/core/assignment"
	"github.com/codewithmesree/saiu-learnflow/core/auth"
	"github.com/codewithmesree/saiu-learnflow/core/course"
	"github.com/codewithmesree/saiu-learnflow/core/schedule"
	"github.com/codewithmesree/saiu-learnflow/core/submission"
	"github.com/codewithmesree/saiu-learnflow/core/user"
	logsvc "github.com/codewithmesree/saiu-learnflow/services/logger"
	"github.com/codewithmesree/saiu-learnflow/storage"
)

// ServerParams collects everything the API server depends on.
type ServerParams struct {
	dig.In

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

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newStore(conf *core.Config, logger core.Logger) storage.Store {
	store, err := storage.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening %s storage: %v", conf.Storage.Driver, err), err)
	}
	return store
}

func newKVStore(store storage.Store) core.KVStore {
	return store
}

func newHasher(conf *core.Config) user.PasswordHasher {
	return user.NewHasher(conf.Auth.HashPasswords)
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func newServer(p ServerParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:            p.Conf,
		Logger:          p.Logger,
		Validate:        p.Validate,
		Translator:      p.Translator,
		AuthSvc:         p.AuthSvc,
		UserSvc:         p.UserSvc,
		CourseSvc:       p.CourseSvc,
		AnnouncementSvc: p.AnnouncementSvc,
		AssignmentSvc:   p.AssignmentSvc,
		SubmissionSvc:   p.SubmissionSvc,
		ScheduleSvc:     p.ScheduleSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStore))
	must(c.Provide(newKVStore))
	must(c.Provide(newHasher))
	must(c.Provide(validator.New))
	must(c.Provide(newTranslator))
	must(c.Provide(user.NewService))
	must(c.Provide(auth.NewService))
	must(c.Provide(course.NewService))
	must(c.Provide(announcement.NewService))
	must(c.Provide(assignment.NewService))
	must(c.Provide(submission.NewService))
	must(c.Provide(schedule.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
