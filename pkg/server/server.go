package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/healthcalc/pkg/calc"
	"github.com/charlie0129/healthcalc/pkg/config"
	"github.com/charlie0129/healthcalc/pkg/types"
)

// Server serves the calculators over HTTP. Handlers share nothing but the
// config, which may be reloaded while requests are in flight.
type Server struct {
	conf config.Config
	now  func() time.Time
}

type Option func(*Server)

// WithClock replaces the clock used for the default "today" of
// date-dependent calculators.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func New(conf config.Config, opts ...Option) *Server {
	s := &Server{
		conf: conf,
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Server) defaults() types.Defaults {
	return types.Defaults{
		Units: s.conf.DefaultUnits(),
		Today: calc.DateOf(s.now()),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

func (s *Server) setupRoutes() *gin.Engine {
	gin.SetMode(s.conf.GinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(ginLogger(logrus.StandardLogger()))

	if err := router.SetTrustedProxies(s.conf.TrustedProxies()); err != nil {
		logrus.Warnf("ignoring invalid trusted proxies: %v", err)
	}

	router.GET("/healthz", getHealth)
	router.GET("/version", getVersion)

	router.GET(apiPrefix+"/calculators", getCalculators)
	for _, c := range catalog {
		router.Handle(c.Method, c.Path, c.handler(s))
	}

	return router
}

// Run loads the config, serves until SIGINT or SIGTERM and then shuts down
// gracefully. SIGHUP reloads the config.
func Run(configPath, envFile string) error {
	conf, err := config.NewFile(configPath, envFile)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to parse config during startup")
	}
	logrus.WithFields(conf.LogrusFields()).Infof("config loaded")
	applyLogLevel(conf)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		defer signal.Stop(sigc)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigc:
			}

			oldAddr, oldSocket := conf.ListenAddr(), conf.UnixSocket()
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			applyLogLevel(conf)
			if conf.ListenAddr() != oldAddr || conf.UnixSocket() != oldSocket {
				logrus.Warn("listen address changes take effect after a restart")
			}
			logrus.WithFields(conf.LogrusFields()).Infof("config reloaded")
		}
	}()

	return New(conf).Serve(ctx)
}

func applyLogLevel(conf config.Config) {
	if level, err := logrus.ParseLevel(conf.LogLevel()); err == nil {
		logrus.SetLevel(level)
	}
}

// Serve listens on the configured TCP address and, if set, a unix socket,
// until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var listeners []net.Listener
	closeAll := func() {
		for _, l := range listeners {
			_ = l.Close()
		}
	}

	if addr := s.conf.ListenAddr(); addr != "" {
		l, err := net.Listen("tcp", addr)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to listen on %s", addr)
		}
		listeners = append(listeners, l)
	}

	if socket := s.conf.UnixSocket(); socket != "" {
		// A stale socket from an unclean exit would make Listen fail.
		if err := os.Remove(socket); err != nil && !os.IsNotExist(err) {
			closeAll()
			return pkgerrors.Wrapf(err, "failed to remove stale socket %s", socket)
		}
		l, err := net.Listen("unix", socket)
		if err != nil {
			closeAll()
			return pkgerrors.Wrapf(err, "failed to listen on %s", socket)
		}
		listeners = append(listeners, l)
	}

	if len(listeners) == 0 {
		return pkgerrors.New("neither a listen address nor a unix socket is configured")
	}

	errc := make(chan error, len(listeners))
	for _, l := range listeners {
		go func(l net.Listener) {
			logrus.Infof("http server listening on %s", l.Addr().String())
			if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}(l)
	}

	var serveErr error
	select {
	case <-ctx.Done():
		logrus.Info("shutting down http server")
	case serveErr = <-errc:
		logrus.Errorf("http server failed: %v", serveErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}

	logrus.Info("exiting")
	return serveErr
}
