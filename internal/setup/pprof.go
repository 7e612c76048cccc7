package setup

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"go.uber.org/zap"
)

// debugServer serves runtime profiles on a loopback address.
type debugServer struct {
	srv    *http.Server
	logger *zap.Logger
}

func debugMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// startDebugServer binds the profiling endpoints to localhost:port and serves them
// in the background until shutdown is called.
func startDebugServer(port int, logger *zap.Logger) (*debugServer, error) {
	addr := net.JoinHostPort("localhost", fmt.Sprint(port))

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	d := &debugServer{
		srv: &http.Server{
			Handler:           debugMux(),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
		logger: logger.Named("debug"),
	}

	go func() {
		d.logger.Info("Serving pprof", zap.String("address", listener.Addr().String()))
		if err := d.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.logger.Error("pprof server stopped", zap.Error(err))
		}
	}()

	return d, nil
}

func (d *debugServer) shutdown(ctx context.Context) {
	if err := d.srv.Shutdown(ctx); err != nil {
		d.logger.Error("Failed to shut down pprof server", zap.Error(err))
	}
}
