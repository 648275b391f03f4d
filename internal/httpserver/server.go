package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"boardhub/internal/config"
)

type Server struct {
	server          *http.Server
	shutDownTimeout time.Duration
	logger          *slog.Logger
}

func New(conf config.HTTPServer, handler http.Handler, logger *slog.Logger) *Server {
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  conf.ReadTimeout,
		WriteTimeout: conf.WriteTimeout,
		Addr:         conf.Addr(),
	}

	return &Server{
		server:          srv,
		shutDownTimeout: conf.ShutdownTimeout,
		logger:          logger,
	}
}

// Run serves until SIGINT, SIGTERM or ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("http server listening", "addr", s.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("http server shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutDownTimeout)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}
