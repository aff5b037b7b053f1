package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/xetdata/docker-volume-xetfs/pkg/log"
	"github.com/xetdata/docker-volume-xetfs/pkg/metrics"
	"github.com/xetdata/docker-volume-xetfs/pkg/storage"
)

// HealthServer provides the admin HTTP endpoints: health, readiness,
// liveness and Prometheus metrics.
type HealthServer struct {
	store   storage.Store
	version string
	router  *mux.Router
	server  *http.Server
	logger  zerolog.Logger
}

// NewHealthServer creates an admin server. Component health comes from the
// metrics package; store is only used to report the volume count.
func NewHealthServer(store storage.Store, version string) *HealthServer {
	hs := &HealthServer{
		store:   store,
		version: version,
		router:  mux.NewRouter(),
		logger:  log.WithComponent("admin"),
	}

	hs.router.HandleFunc("/health", hs.healthHandler).Methods(http.MethodGet)
	hs.router.HandleFunc("/ready", hs.readyHandler).Methods(http.MethodGet)
	hs.router.Handle("/live", metrics.LivenessHandler()).Methods(http.MethodGet)
	hs.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	hs.server = &http.Server{
		Handler:      hs.router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return hs
}

// Start listens on addr and serves until Shutdown
func (hs *HealthServer) Start(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return hs.Serve(l)
}

// Serve serves admin requests on l until Shutdown
func (hs *HealthServer) Serve(l net.Listener) error {
	hs.logger.Info().Str("addr", l.Addr().String()).Msg("Admin server listening")
	err := hs.server.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the admin server
func (hs *HealthServer) Shutdown(ctx context.Context) error {
	return hs.server.Shutdown(ctx)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Version    string            `json:"version,omitempty"`
	Volumes    int               `json:"volumes"`
	Components map[string]string `json:"components,omitempty"`
}

// ReadyResponse represents the readiness check response
type ReadyResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
	Message   string            `json:"message,omitempty"`
}

// healthHandler returns 200 while the process is alive. Component states
// are informational; readiness is reported by /ready.
func (hs *HealthServer) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now(),
		Version:    hs.version,
		Components: metrics.GetHealth().Components,
	}
	if hs.store != nil {
		response.Volumes = hs.store.Len()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// readyHandler returns 200 once the plugin listener is bound and the mount
// root is a directory
func (hs *HealthServer) readyHandler(w http.ResponseWriter, r *http.Request) {
	readiness := metrics.GetReadiness()

	status := "ready"
	statusCode := http.StatusOK
	if readiness.Status != "ready" {
		status = "not ready"
		statusCode = http.StatusServiceUnavailable
	}

	response := ReadyResponse{
		Status:    status,
		Timestamp: readiness.Timestamp,
		Checks:    readiness.Components,
		Message:   readiness.Message,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// GetHandler returns the HTTP handler for embedding in other servers
func (hs *HealthServer) GetHandler() http.Handler {
	return hs.router
}
