package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"lingod/internal/httpapi"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *Options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API",
		Example: "  lingod serve --addr :8080\n  lingod serve --backend mock",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			log := NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
			svc, err := newService(cfg, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			httpapi.SetLogger(log.With().Str("component", "http").Logger())
			httpapi.SetRequestLogLevel(cfg.LogLevel)
			httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
			httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.Origins, nil, nil)
			httpapi.SetBaseContext(ctx)

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           httpapi.NewMux(svc),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Probing can take a while on a cold host; /readyz reports it.
			go svc.Start(ctx)

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.Addr).Str("backend", cfg.Backend).Msg("lingod listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				_ = svc.Close()
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("graceful shutdown error")
			}
			if err := svc.Close(); err != nil {
				log.Warn().Err(err).Msg("release sessions")
			}
			log.Info().Msg("lingod stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080 (defaults LINGOD_ADDR or :8080)")
	return cmd
}
