package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

const httpShutdownTimeout = 5 * time.Second

// Handler returns the HTTP handler for the stateless transport: a single
// JSON-RPC message per POST /mcp request, plus a health endpoint. Every
// request is independent; no session state is kept between calls.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Post("/mcp", func(w http.ResponseWriter, req *http.Request) {
		var msg JSONRPCMessage
		if err := json.NewDecoder(req.Body).Decode(&msg); err != nil {
			writeJSON(w, http.StatusBadRequest, &JSONRPCMessage{
				JSONRPC: "2.0",
				Error:   &JSONRPCError{Code: CodeParseError, Message: err.Error()},
			})
			return
		}

		resp := s.Handle(&msg)
		if resp == nil {
			// Notification: acknowledged, nothing to return.
			w.WriteHeader(http.StatusAccepted)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return r
}

// ServeHTTP runs the HTTP transport on addr until ctx is canceled, then
// shuts down gracefully.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("HTTP transport listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
