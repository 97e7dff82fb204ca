// Package app is the composition root: it constructs the services and
// controllers, assembles the route table and runs the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/mnehpets/learnspring/controller"
	"github.com/mnehpets/learnspring/endpoint"
	"github.com/mnehpets/learnspring/internal/config"
	"github.com/mnehpets/learnspring/middleware"
	"github.com/mnehpets/learnspring/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// App owns every component of the application.
type App struct {
	cfg    config.Config
	logger *zap.Logger

	demo        service.DemoService
	controllers []controller.Controller
	processors  []endpoint.Processor
}

// New wires the application. A nil logger discards all output.
func New(cfg config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		cfg:    cfg,
		logger: logger,
		demo:   service.NewDemoService(),
		controllers: []controller.Controller{
			controller.NewHelloWorldController(),
		},
		// Access logging runs first so that recovered panics are logged as 500s.
		processors: []endpoint.Processor{
			middleware.NewAccessLogProcessor(logger.Named("http")),
			middleware.NewRecoverProcessor(logger.Named("http")),
			middleware.NewSecurityHeadersProcessor(),
		},
	}
}

// DemoService returns the shared DemoService for in-process consumers.
func (a *App) DemoService() service.DemoService {
	return a.demo
}

// Handler returns the route table with every controller mounted.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	controller.Mount(mux, a.controllers, a.processors...)
	return mux
}

// Run listens on the configured address and serves until ctx is done.
func (a *App) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", a.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.cfg.Addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts the server down, waiting
// at most ShutdownTimeout for in-flight requests. Serve closes ln.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: a.cfg.ReadHeaderTimeout,
		ErrorLog:          zap.NewStdLog(a.logger.Named("http")),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("listening",
			zap.String("addr", ln.Addr().String()),
			zap.String("welcome", a.demo.WelcomeMessage()),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		a.logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
