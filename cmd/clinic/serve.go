package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Leganyst/clinic-desk/internal/auth"
	"github.com/Leganyst/clinic-desk/internal/health"
	"github.com/Leganyst/clinic-desk/internal/httpapi"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		autoMigrate    bool
		healthInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the gRPC health endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(flags, autoMigrate, healthInterval)
		},
	}
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "Run schema migration before serving")
	cmd.Flags().DurationVar(&healthInterval, "health-interval", 10*time.Second, "Store liveness check interval")
	return cmd
}

func serve(flags *globalFlags, autoMigrate bool, healthInterval time.Duration) error {
	a, err := newApp(flags)
	if err != nil {
		return err
	}
	defer a.Close()

	if autoMigrate {
		if err := a.migrate(); err != nil {
			return err
		}
	}

	var tokens *auth.Tokens
	if a.cfg.Auth.JWTSecret != "" {
		tokens, err = auth.NewTokens(a.cfg.Auth)
		if err != nil {
			return err
		}
	} else {
		a.log.Warn("JWT_SECRET is empty: authentication disabled, every request acts as admin")
	}

	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("sql DB: %w", err)
	}
	hs := health.NewServer(sqlDB, a.log)

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(httpapi.Options{
		Service:      a.clinic,
		Tokens:       tokens,
		Operators:    a.repos.Staff,
		Health:       hs,
		Metrics:      a.metrics.Handler(),
		Logger:       a.log,
		AllowOrigins: a.cfg.HTTP.AllowOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go hs.Run(ctx, healthInterval)

	errCh := make(chan error, 2)

	httpServer := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		a.log.Info("http server listening", "addr", a.cfg.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()

	if a.cfg.GRPC.Addr != "" {
		lis, err := net.Listen("tcp", a.cfg.GRPC.Addr)
		if err != nil {
			shutdown(a, httpServer, hs)
			return fmt.Errorf("listen %s: %w", a.cfg.GRPC.Addr, err)
		}
		go func() {
			a.log.Info("grpc health server listening", "addr", a.cfg.GRPC.Addr)
			if err := hs.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc serve: %w", err)
			}
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutting down")
	case serveErr = <-errCh:
		a.log.Error("server failed", "error", serveErr)
	}

	shutdown(a, httpServer, hs)
	return serveErr
}

func shutdown(a *app, httpServer *http.Server, hs *health.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		a.log.Warn("http shutdown", "error", err)
	}
	hs.GracefulStop()
}
