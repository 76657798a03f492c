package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/Faultbox/rocket-loadout/internal/config"
)

// Serve listens on cfg.Server.Addr and serves the API until ctx is done.
func Serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", cfg.Server.Addr, err)
	}
	return ServeListener(ctx, ln, cfg, log)
}

// ServeListener serves the API on ln until ctx is done, then shuts down
// gracefully within cfg.Server.ShutdownTimeout.
func ServeListener(ctx context.Context, ln net.Listener, cfg *config.Config, log *zap.Logger) error {
	srv := &http.Server{
		Handler:      SetupRoutes(cfg, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	log.Info("listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh
	return nil
}
