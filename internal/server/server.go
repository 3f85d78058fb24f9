// Package server exposes the processing pipeline over HTTP. Results are
// optionally cached in Redis (keyed by the raw upload bytes) and persisted
// through a store backend.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/veridata-labs/airlens-cli/internal/cache"
	"github.com/veridata-labs/airlens-cli/internal/dataset"
	"github.com/veridata-labs/airlens-cli/internal/parser"
	"github.com/veridata-labs/airlens-cli/internal/pipeline"
	"github.com/veridata-labs/airlens-cli/internal/store"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "airlens_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "airlens_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	datasetsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airlens_datasets_processed_total",
		Help: "Total number of datasets processed",
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "airlens_cache_hits_total",
		Help: "Total number of result cache hits",
	})

	pointsExtracted = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "airlens_last_points_extracted",
		Help: "Points extracted from the most recent dataset",
	})
)

// Options configures a Server. Cache and Results are optional; a nil cache
// disables memoization and a nil store disables persistence endpoints.
type Options struct {
	Cache          *cache.ResultCache
	Results        store.Store
	MaxUploadBytes int64
	HTTPTimeout    time.Duration
}

type Server struct {
	router      *mux.Router
	processor   *pipeline.Processor
	cache       *cache.ResultCache
	results     store.Store
	maxUpload   int64
	httpTimeout time.Duration
}

func New(opts Options) *Server {
	maxUpload := opts.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = 32 << 20
	}
	timeout := opts.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := &Server{
		router:      mux.NewRouter(),
		processor:   pipeline.NewProcessor(),
		cache:       opts.Cache,
		results:     opts.Results,
		maxUpload:   maxUpload,
		httpTimeout: timeout,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.healthHandler).Methods("GET")
	s.router.HandleFunc("/api/process", s.processHandler).Methods("POST")
	s.router.HandleFunc("/api/process/file", s.processFileHandler).Methods("POST")
	s.router.HandleFunc("/api/results", s.listResultsHandler).Methods("GET")
	s.router.HandleFunc("/api/results/{id}", s.getResultHandler).Methods("GET")
	s.router.Handle("/metrics", promhttp.Handler())
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	health := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	}
	writeJSON(w, http.StatusOK, health)

	observe(r, start, "200")
}

// processHandler accepts a JSON array of records and runs the pipeline.
func (s *Server) processHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, s.maxUpload))
	if err != nil {
		http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
		observe(r, start, "400")
		return
	}
	records, err := parser.Parse("body.json", body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		observe(r, start, "400")
		return
	}
	res := s.process(r.Context(), body, records)
	s.persist(r.Context(), "api-upload", res)
	writeJSON(w, http.StatusOK, res)
	observe(r, start, "200")
}

// processFileHandler accepts a multipart upload under the "file" field and
// parses it by filename extension.
func (s *Server) processFileHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		http.Error(w, "parse upload: "+err.Error(), http.StatusBadRequest)
		observe(r, start, "400")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field", http.StatusBadRequest)
		observe(r, start, "400")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.maxUpload))
	if err != nil {
		http.Error(w, "read upload: "+err.Error(), http.StatusBadRequest)
		observe(r, start, "400")
		return
	}
	records, err := parser.Parse(header.Filename, data)
	if err != nil {
		if errors.Is(err, parser.ErrUnsupported) {
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			observe(r, start, "415")
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		observe(r, start, "400")
		return
	}
	res := s.process(r.Context(), data, records)
	s.persist(r.Context(), header.Filename, res)
	writeJSON(w, http.StatusOK, res)
	observe(r, start, "200")
}

func (s *Server) listResultsHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if s.results == nil {
		http.Error(w, "result store not configured", http.StatusNotImplemented)
		observe(r, start, "501")
		return
	}
	results, err := s.results.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		observe(r, start, "500")
		return
	}
	writeJSON(w, http.StatusOK, results)
	observe(r, start, "200")
}

func (s *Server) getResultHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if s.results == nil {
		http.Error(w, "result store not configured", http.StatusNotImplemented)
		observe(r, start, "501")
		return
	}
	id := mux.Vars(r)["id"]
	saved, err := s.results.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			observe(r, start, "404")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		observe(r, start, "500")
		return
	}
	writeJSON(w, http.StatusOK, saved)
	observe(r, start, "200")
}

// process runs the pipeline with cache memoization on the raw bytes.
func (s *Server) process(ctx context.Context, raw []byte, records dataset.RecordSet) *pipeline.ProcessedResult {
	var key string
	if s.cache != nil {
		key = cache.Key(raw)
		if cached, err := s.cache.Get(ctx, key); err == nil && cached != nil {
			cacheHits.Inc()
			return cached
		}
	}
	res := s.processor.Process(records)
	datasetsProcessed.Inc()
	pointsExtracted.Set(float64(res.Summary.TotalPoints))
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, res); err != nil {
			log.Printf("cache result: %v", err)
		}
	}
	return res
}

func (s *Server) persist(ctx context.Context, name string, res *pipeline.ProcessedResult) {
	if s.results == nil {
		return
	}
	if _, err := s.results.Save(ctx, name, res); err != nil {
		log.Printf("persist result: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func observe(r *http.Request, start time.Time, status string) {
	requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
}

// httpServer builds the listener configuration used by Run.
func (s *Server) httpServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.httpTimeout,
		WriteTimeout: s.httpTimeout,
		IdleTimeout:  2 * s.httpTimeout,
	}
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Run(addr string) error {
	srv := s.httpServer(addr)

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
		close(done)
	}()

	log.Printf("Server is ready to handle requests at %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	<-done
	log.Println("Server stopped")
	return nil
}
