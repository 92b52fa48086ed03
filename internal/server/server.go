// Package server exposes the HTTP surface of the service: the report-submitted
// intake that triggers a fan-out, plus health check and metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/crimealert/beacon/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	readTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
)

// Dispatcher runs one notification fan-out. Implemented by service.Notifier.
type Dispatcher interface {
	Notify(ctx context.Context, report models.ReportSubmitted) []models.DispatchOutcome
}

// Pinger reports database liveness for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server handles the intake and monitoring endpoints.
type Server struct {
	log        *slog.Logger
	dispatcher Dispatcher
	db         Pinger
	reg        *prometheus.Registry
	validate   *validator.Validate
}

// New creates a new Server. It takes a logger, the fan-out dispatcher, a
// database pinger for health checks and the metrics registry to expose.
func New(log *slog.Logger, dispatcher Dispatcher, db Pinger, reg *prometheus.Registry) *Server {
	return &Server{
		log:        log,
		dispatcher: dispatcher,
		db:         db,
		reg:        reg,
		validate:   validator.New(),
	}
}

// Handler returns the route table. Exposed separately from Run so tests can
// drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/report-submitted", s.handleReportSubmitted)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))

	return mux
}

// Run starts the HTTP server on the given port and blocks until the context is
// canceled or the listener fails.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), readTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.ErrorContext(ctx, "Failed to shut down HTTP server", "error", err)
		}
	}()

	s.log.InfoContext(ctx, "Starting HTTP server", "port", port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}

	return nil
}

// handleReportSubmitted accepts a report-submitted event and triggers the
// fan-out in the background. The request is acknowledged with 202 as soon as
// the payload is valid; delivery results are never part of the response.
func (s *Server) handleReportSubmitted(writer http.ResponseWriter, request *http.Request) {
	var report models.ReportSubmitted
	if err := json.NewDecoder(request.Body).Decode(&report); err != nil {
		s.log.WarnContext(request.Context(), "Rejected malformed report payload", "error", err)
		http.Error(writer, "invalid JSON payload", http.StatusBadRequest)

		return
	}

	if err := s.validate.Struct(report); err != nil {
		s.log.WarnContext(request.Context(), "Rejected invalid report payload", "error", err)
		http.Error(writer, fmt.Sprintf("invalid report: %v", err), http.StatusBadRequest)

		return
	}

	// Detach from the request context so the fan-out outlives this handler.
	ctx := context.WithoutCancel(request.Context())
	go s.dispatcher.Notify(ctx, report)

	writer.WriteHeader(http.StatusAccepted)
	if _, err := writer.Write([]byte("accepted")); err != nil {
		s.log.ErrorContext(request.Context(), "failed to write reply", "error", err)
	}
}

func (s *Server) handleHealthz(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	s.log.DebugContext(ctx, "Performing health checks...")

	status, body := http.StatusOK, "OK"
	if err := s.db.Ping(ctx); err != nil {
		status, body = http.StatusServiceUnavailable, "DB ping failed"
	}
	writer.WriteHeader(status)
	if _, err := writer.Write([]byte(body)); err != nil {
		s.log.ErrorContext(ctx, "failed to write reply", "error", err)
	}

	s.log.DebugContext(ctx, "Health checks completed", "status", status)
}
