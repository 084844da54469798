// Package server provides the local HTTP JSON API over a resume project.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-reviewer/internal/agents"
	"github.com/jonathan/resume-reviewer/internal/config"
	"github.com/jonathan/resume-reviewer/internal/llm"
	"github.com/jonathan/resume-reviewer/internal/project"
	"github.com/jonathan/resume-reviewer/internal/results"
	"github.com/jonathan/resume-reviewer/internal/server/ratelimit"
	"github.com/jonathan/resume-reviewer/internal/workflow"
)

// maxBodyBytes caps request bodies; profiles and postings are small markdown.
const maxBodyBytes = 2 << 20

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	service     *workflow.Service
	rateLimiter *ratelimit.Limiter
	llmClient   llm.Client
	validate    *validator.Validate
}

// Config holds server configuration
type Config struct {
	Host      string
	Port      int
	Project   *config.Config
	APIKey    string
	LLM       *llm.Config
	RateLimit *ratelimit.Config
}

// New creates a server over cfg.Project. Without an API key the store and
// result endpoints work and the agent endpoints answer 503.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if cfg.Project == nil {
		return nil, fmt.Errorf("project config is required")
	}

	svc := &workflow.Service{
		Store:   project.NewManager(cfg.Project),
		Results: results.NewManager(cfg.Project),
	}

	var client llm.Client
	if cfg.APIKey != "" {
		var err error
		client, err = llm.NewClient(ctx, cfg.LLM, cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		svc.Reviewer = agents.NewReviewer(client)
		svc.Builder = agents.NewBuilder(client)
		svc.Importer = agents.NewImporter(client)
	}

	s := NewWithService(svc, ratelimit.NewLimiter(cfg.RateLimit))
	s.llmClient = client
	s.httpServer.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	return s, nil
}

// NewWithService creates a server around an existing workflow service.
func NewWithService(svc *workflow.Service, limiter *ratelimit.Limiter) *Server {
	if limiter == nil {
		limiter = ratelimit.NewLimiter(nil)
	}
	s := &Server{
		service:     svc,
		rateLimiter: limiter,
		validate:    validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /config", s.handleConfig)
	mux.HandleFunc("POST /init", s.handleInit)

	mux.HandleFunc("GET /people", s.handleListPeople)
	mux.HandleFunc("POST /people", s.handleAddPerson)
	mux.HandleFunc("GET /people/{name}", s.handleGetPerson)
	mux.HandleFunc("PUT /people/{name}", s.handleUpdatePerson)
	mux.HandleFunc("POST /people/{name}/import", s.handleImportProfile)
	mux.HandleFunc("GET /people/{name}/resumes", s.handleListResumes)
	mux.HandleFunc("GET /people/{name}/resumes/{resume}", s.handleGetResume)
	mux.HandleFunc("PUT /people/{name}/resumes/{resume}", s.handleUpdateResume)

	mux.HandleFunc("GET /companies", s.handleListCompanies)
	mux.HandleFunc("POST /companies", s.handleAddCompany)
	mux.HandleFunc("GET /companies/{name}", s.handleGetCompany)
	mux.HandleFunc("PUT /companies/{name}", s.handleUpdateCompany)
	mux.HandleFunc("GET /companies/{name}/jobs", s.handleListJobs)
	mux.HandleFunc("POST /companies/{name}/jobs", s.handleAddJob)
	mux.HandleFunc("GET /companies/{name}/jobs/{job}", s.handleGetJob)
	mux.HandleFunc("PUT /companies/{name}/jobs/{job}", s.handleUpdateJob)

	mux.HandleFunc("GET /results", s.handleListResults)
	mux.HandleFunc("GET /results/{filename}", s.handleGetResult)

	mux.HandleFunc("POST /review", s.handleReview)
	mux.HandleFunc("POST /review/jobs", s.handleReviewAllJobs)
	mux.HandleFunc("POST /build", s.handleBuild)

	s.httpServer = &http.Server{
		Handler:      s.withLogging(s.withCORS(s.withRateLimit(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // agent calls can be slow
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (project %s)", s.httpServer.Addr, s.service.Store.Config().ProjectRoot)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit throttles the endpoints that call the LLM.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(r.Method, r.URL.Path)
		if !allowed {
			retry := int(info.RetryAfter.Round(time.Second).Seconds())
			w.Header().Set("Retry-After", strconv.Itoa(retry))
			log.Printf("[rate-limit] %s %s rejected, retry in %ds", r.Method, r.URL.Path, retry)
			s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
				"error":       "rate limit exceeded",
				"limit":       info.Limit,
				"window":      info.Window.String(),
				"retry_after": retry,
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d in %v", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure writes err with the status HTTPStatus picks for it.
func (s *Server) failure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Request failed: %v", err)
	}
	s.errorResponse(w, status, err.Error())
}

// decode reads a JSON body into v and validates its struct tags.
func (s *Server) decode(r *http.Request, v any) error {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return &ErrValidation{Message: "invalid request body: " + err.Error()}
	}
	return s.validate.Struct(v)
}

func (s *Server) store() *project.Manager {
	return s.service.Store
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "ok",
		"agents": s.service.Reviewer != nil,
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"config": s.store().Config(),
		"paths":  s.store().Paths(),
	})
}

func (s *Server) handleInit(w http.ResponseWriter, _ *http.Request) {
	res, err := s.store().Init()
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}
