package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"animal-shelter/internal/adapters/auth/statictoken"
	"animal-shelter/internal/platform/metrics"
	"animal-shelter/internal/ports/auth"
	"animal-shelter/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el dashboard y la API HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	repo, err := openRepo(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			log.Warn("close store", map[string]any{"error": err})
		}
	}()

	// statictoken.New devuelve nil sin token: no meter un *Verifier nil en la interfaz.
	var verifier auth.AuthVerifier
	if v := statictoken.New(cfg.Auth.Token, cfg.Auth.OperatorID); v != nil {
		verifier = v
	}

	h, err := router.NewRouter(ctx, router.Options{
		AuthVerifier: verifier,
		Repo:         repo,
		Logger:       log,
		Metrics:      metrics.New("shelter"),
		PageSize:     cfg.Dashboard.PageSize,
		Title:        cfg.Dashboard.Title,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":    srv.Addr,
			"storage": string(cfg.Storage),
			"auth":    verifier != nil,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
