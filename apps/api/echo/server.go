package echoapi

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/hashemmwanes8-maker/uni-ai-coach/core"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/assignment"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/course"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/feedback"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/submission"
	"github.com/hashemmwanes8-maker/uni-ai-coach/core/user"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool

		AppLogger     core.Logger
		UserSvc       user.Service
		CourseSvc     course.Service
		AssignmentSvc assignment.Service
		SubmissionSvc submission.Service
		FeedbackSvc   feedback.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

// NewServer sets up the API routes and middleware. signalShutdown is invoked
// when an unrecoverable integrity error bubbles up to the error handler.
func NewServer(opts *Options, signalShutdown func()) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup(signalShutdown)
	return s
}

func (s *server) setup(signalShutdown func()) {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// browser clients call us cross-origin; preflight requests short-circuit
	// here before any auth middleware runs
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, "x-client-info", "apikey", echo.HeaderContentType},
	}))
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.AppLogger, signalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig())

	registerUserAPI(v1, jwt, s.opts.UserSvc)
	registerCourseAPI(v1, jwt, s.opts.CourseSvc, s.opts.UserSvc)
	registerAssignmentAPI(v1, jwt, s.opts.AssignmentSvc, s.opts.CourseSvc, s.opts.UserSvc)
	registerSubmissionAPI(v1, jwt, s.opts.SubmissionSvc, s.opts.AssignmentSvc, s.opts.CourseSvc, s.opts.UserSvc)
	registerFeedbackAPI(v1, jwt, s.opts.FeedbackSvc, s.opts.SubmissionSvc, s.opts.UserSvc)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Uni AI Coach API!")
}
