package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/kelasdev/kelas/apps/api/echo"
	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/content"
	"github.com/kelasdev/kelas/core/course"
	"github.com/kelasdev/kelas/core/onboarding"
	"github.com/kelasdev/kelas/core/progress"
	"github.com/kelasdev/kelas/core/stats"
	appfs "github.com/kelasdev/kelas/fs"
	emailsvc "github.com/kelasdev/kelas/services/email"
	logsvc "github.com/kelasdev/kelas/services/logger"
	"github.com/kelasdev/kelas/storage"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

type repositories struct {
	dig.Out
	Courses    course.Repository
	Onboarding onboarding.Repository
	Progress   progress.Repository
	Stats      stats.Repository
}

type serverParams struct {
	dig.In
	Conf          *core.Config
	Logger        core.Logger
	Storage       *storage.Storage
	Validate      *validator.Validate
	Translator    ut.Translator
	CourseSvc     *course.Service
	OnboardingSvc *onboarding.Service
	ProgressSvc   *progress.Service
	StatsSvc      *stats.Service
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newStorage(conf *core.Config, loggerParam DBLoggerParam) *storage.Storage {
	s, err := storage.Open(context.Background(), conf, true /* migrate */)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return s
}

func newRepositories(s *storage.Storage) repositories {
	return repositories{
		Courses:    s.Courses,
		Onboarding: s.Onboarding,
		Progress:   s.Progress,
		Stats:      s.Stats,
	}
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	content.InitValidators(validate, translator)
	course.InitValidators(validate, translator)
	return validate
}

func newEmailTemplates(conf *core.Config) (*core.EmailTemplates, error) {
	return core.ParseEmailTemplates(appfs.EmailTemplates(), conf)
}

func newProgressService(repo progress.Repository, courses *course.Service, profiles onboarding.Repository) *progress.Service {
	return progress.NewService(repo, courses, profiles)
}

func newServer(p serverParams) *echoapi.Server {
	return echoapi.NewServer(p.Conf, p.Logger, &echoapi.Deps{
		DB:            p.Storage.DB,
		Validate:      p.Validate,
		Translator:    p.Translator,
		CourseSvc:     p.CourseSvc,
		OnboardingSvc: p.OnboardingSvc,
		ProgressSvc:   p.ProgressSvc,
		StatsSvc:      p.StatsSvc,
	})
}

// New returns a new dependency injection dig.Container
func New(newConfig func() *core.Config) *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStorage))
	must(c.Provide(newRepositories))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(newEmailTemplates))
	must(c.Provide(emailsvc.NewService))
	must(c.Provide(course.NewService))
	must(c.Provide(onboarding.NewService))
	must(c.Provide(newProgressService))
	must(c.Provide(stats.NewService))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
