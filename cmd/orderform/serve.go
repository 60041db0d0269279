package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-orderform/components/orderform"
	"github.com/goliatone/go-orderform/internal/config"
	"github.com/goliatone/go-orderform/internal/logging"
)

func newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the order form over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config and "+config.EnvAddr+")")
	return cmd
}

func newServer(cfg config.Config) (*http.Server, *orderform.Component, error) {
	theme, err := cfg.Theme.Resolve()
	if err != nil {
		return nil, nil, err
	}

	component, err := orderform.New(
		orderform.WithSessionTTL(cfg.Session.TTL),
		orderform.WithCookieName(cfg.Session.CookieName),
		orderform.WithTheme(theme),
		orderform.WithIntroHTML(cfg.Home.IntroHTML),
		orderform.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	handler, err := component.Handler(cfg.Server.BasePath)
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           logging.Middleware(logger, handler),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
	return srv, component, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	srv, component, err := newServer(cfg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("base_path", cfg.Server.BasePath))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return component.Store().Run(gctx, 0)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
