package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/autopeer-io/edfsizer/internal/pkg/metrics"
	"github.com/autopeer-io/edfsizer/internal/sizer/snapshot"
	"github.com/autopeer-io/edfsizer/pkg/log"
)

// NewRouter wires the API, health and metrics endpoints around store.
func NewRouter(store *snapshot.Store) *mux.Router {
	h := &handler{store: store}

	r := mux.NewRouter()
	r.Use(accessLog)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/candidates", h.handleCandidates).Methods(http.MethodGet)
	api.HandleFunc("/frontier", h.handleFrontier).Methods(http.MethodGet)
	api.HandleFunc("/snapshot", h.handleSnapshot).Methods(http.MethodGet)
	api.HandleFunc("/reload", h.handleReload).Methods(http.MethodPost)

	r.HandleFunc("/healthz", h.handleHealthz).Methods(http.MethodGet)
	r.HandleFunc("/readyz", h.handleReadyz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "elapsed", time.Since(start))
	})
}
