package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/pkg/errors"

	"github.com/kelasdev/kelas/core"
	"github.com/kelasdev/kelas/core/course"
	"github.com/kelasdev/kelas/core/onboarding"
	"github.com/kelasdev/kelas/core/progress"
	"github.com/kelasdev/kelas/core/stats"
)

type (
	Deps struct {
		DB            core.Pinger
		Validate      *validator.Validate
		Translator    ut.Translator
		CourseSvc     *course.Service
		OnboardingSvc *onboarding.Service
		ProgressSvc   *progress.Service
		StatsSvc      *stats.Service
	}

	Server struct {
		app      *echo.Echo
		address  string
		shutdown chan os.Signal
		errors   chan error
	}
)

var _ http.Handler = (*Server)(nil)

func NewServer(conf *core.Config, logger core.Logger, deps *Deps) *Server {
	s := &Server{
		app:      echo.New(),
		address:  conf.Server.Address,
		shutdown: make(chan os.Signal, 1),
		errors:   make(chan error, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup(conf, logger, deps)
	return s
}

func (s *Server) setup(conf *core.Config, logger core.Logger, deps *Deps) {
	s.app.HideBanner = true
	s.app.Server.ReadTimeout = conf.Server.ReadTimeout
	s.app.Server.WriteTimeout = conf.Server.WriteTimeout
	s.app.Logger.SetLevel(log.INFO)

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: conf.Server.AllowOrigins}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(logger, deps.Translator)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := jwtMiddleware(conf.SecretKey)

	v1.GET("/health", health(deps.DB))
	registerCourseAPI(v1, jwt, deps.CourseSvc, deps.Validate)
	registerOnboardingAPI(v1, jwt, deps.OnboardingSvc, deps.Validate)
	registerProgressAPI(v1, jwt, deps.ProgressSvc)
	registerAdminAPI(v1, jwt, deps.StatsSvc)
}

// Start listens and serves until the server is shut down. Listening errors are sent to Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
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
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Kelas API!")
}

func health(db core.Pinger) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if err := db.PingContext(ctx.Request().Context()); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable").SetInternal(err)
		}
		return ctx.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
}
