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

	"github.com/Speakceo/speakceo-education-platform-sub002/core"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/canvas"
	"github.com/Speakceo/speakceo-education-platform-sub002/core/workspace"
	metricsvc "github.com/Speakceo/speakceo-education-platform-sub002/services/metrics"
)

type Server struct {
	app      *echo.Echo
	addr     string
	errors   chan error
	shutdown chan os.Signal
}

var _ http.Handler = (*Server)(nil)

func NewServer(
	conf *core.Config,
	logger core.Logger,
	validate *validator.Validate,
	translator ut.Translator,
	workspaces *workspace.Manager,
	advisor canvas.Advisor,
	metrics *metricsvc.PrometheusRecorder,
) *Server {
	s := &Server{
		app:      echo.New(),
		addr:     conf.Server.Host,
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)

	app := s.app
	app.HideBanner = true
	app.Debug = conf.Debug

	app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	app.Use(metricsMiddleware(metrics))

	app.HTTPErrorHandler = newAppHTTPErrorHandler(logger, translator, s.SignalShutdown)

	app.GET("/", home)
	app.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	v1 := app.Group("/v1", middleware.JWTWithConfig(newJWTConfig(conf.SecretKey)), workspaceMiddleware(workspaces))

	registerCanvasAPI(v1, advisor, validate)
	registerFinancialAPI(v1, validate)
	registerPitchAPI(v1, validate)
	registerBrandAPI(v1, validate)
	registerProgressAPI(v1)

	return s
}

// Start listens until the server is shut down. Listener errors are sent to Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.addr); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks for a graceful shutdown.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
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
	return ctx.String(http.StatusOK, "Welcome to SpeakCEO API!")
}
