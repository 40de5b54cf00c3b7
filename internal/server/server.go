package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/dummy-bank/portfolio-api/internal/logger"
)

const _shutdownTimeout = 10 * time.Second

type HTTPServer struct {
	s      *http.Server
	logger logger.Logger
}

func NewHTTPServer(ctx context.Context, port string, handler http.Handler, logger logger.Logger) *HTTPServer {
	return &HTTPServer{
		s: &http.Server{
			Handler:           handler,
			Addr:              ":" + port,
			ReadHeaderTimeout: 10 * time.Second,
			BaseContext: func(listener net.Listener) context.Context {
				return ctx
			},
		},
		logger: logger,
	}
}

func (s *HTTPServer) Start() error {
	s.logger.Infof("listening on %s", s.s.Addr)
	return s.s.ListenAndServe()
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.s.Shutdown(ctx)
}

func (s *HTTPServer) Run(ctx context.Context) error {
	errCh := make(chan error)
	go func() {
		errCh <- s.Start()
	}()
	select {
	case <-ctx.Done():
		// ctx is already canceled here; shutting down with it would skip
		// the drain entirely.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), _shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
