package telemetry

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/lixenwraith/tmc-evolve/logging"
)

// Server exposes /healthz, /ws and /metrics
type Server struct {
	http   *http.Server
	logger logging.Logger
}

// NewServer builds the telemetry routes
func NewServer(addr string, hub *Hub, metrics *Metrics, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Server{
		http: &http.Server{
			Addr:              addr,
			Handler:           Routes(hub, metrics),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Routes returns the telemetry mux
func Routes(hub *Hub, metrics *Metrics) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("GET /ws", hub)
	mux.Handle("GET /metrics", metrics.Handler())
	return mux
}

// Serve listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return err
	}
	s.logger.Infof("telemetry listening on %s", ln.Addr())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.http.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	}
}
