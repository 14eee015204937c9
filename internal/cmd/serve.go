package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/karolis-jablonskis/label-printer/internal/infrastructure/logger"
	"github.com/karolis-jablonskis/label-printer/internal/interfaces/http/handler"
	"github.com/karolis-jablonskis/label-printer/internal/interfaces/http/middleware"
	"github.com/karolis-jablonskis/label-printer/internal/interfaces/http/router"
)

const shutdownTimeout = 30 * time.Second

type serveOptions struct {
	Addr string
}

func newServeCmd(cli *CLI, opts *rootOptions) *cobra.Command {
	var options serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the label form over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), opts.ConfigFile)
			if err != nil {
				return err
			}
			defer a.close()

			if options.Addr != "" {
				a.cfg.HTTP.Addr = options.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cli.Output("Serving label form on http://%s", a.cfg.HTTP.Addr)
			return a.serve(ctx)
		},
	}

	cmd.Flags().StringVar(&options.Addr, "addr", "", "Listen address (overrides http.addr)")
	return cmd
}

// newEngine builds the gin engine with middleware and label routes
func (a *app) newEngine() *gin.Engine {
	if !a.cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(a.log))
	engine.Use(logger.GinMiddleware(logger.Named(a.log, "http"), "/health"))
	engine.Use(middleware.BodyLimit(a.cfg.HTTP.MaxBodySize))

	labelHandler := handler.NewLabelHandler(a.service, a.storage,
		handler.WithPrintingEnabled(a.service.PrintingEnabled()))

	router.NewRouter(engine, router.WithLogger(logger.Named(a.log, "http"))).
		Pages(handler.PageRoutes(labelHandler)).
		Register(handler.LabelRoutes(labelHandler)).
		Setup()

	return engine
}

// serve runs the HTTP server until ctx is done, then shuts it down gracefully
func (a *app) serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:         a.cfg.HTTP.Addr,
		Handler:      a.newEngine(),
		ReadTimeout:  a.cfg.HTTP.ReadTimeout,
		WriteTimeout: a.cfg.HTTP.WriteTimeout,
		IdleTimeout:  a.cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			a.log.Error("Failed to start server", zap.Error(err))
			return Error{Cause: "failed to start server", OriginalError: err}
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	a.log.Info("Server exited gracefully")
	return nil
}
