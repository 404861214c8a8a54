// Package server exposes the categorization engine and the expense store over
// a JSON HTTP API. Routes are registered on a stdlib mux using Go 1.22 method
// patterns; every endpoint speaks JSON except the CSV export.
package server

import (
	"context"
	"net/http"
	"time"

	"expenserule/internal/engine"
	"expenserule/internal/gemini"
	"expenserule/internal/logging"
	"expenserule/internal/models"
	"expenserule/internal/registry"
	"expenserule/internal/uploads"
)

// Categorizer is the slice of the engine the handlers consume.
type Categorizer interface {
	Categorize(ctx context.Context, merchant string) (engine.Result, error)
	RecordCorrection(ctx context.Context, merchant, categoryName string) (registry.Category, error)
}

// ReceiptExtractor pulls structured fields out of an uploaded receipt image
// or PDF.
type ReceiptExtractor interface {
	ExtractReceipt(ctx context.Context, mimeType string, data []byte) (gemini.Receipt, error)
}

// ExpenseStore is the subset of the repository the API reads and writes.
type ExpenseStore interface {
	Ping(ctx context.Context) error
	InsertExpense(ctx context.Context, e models.Expense) error
	GetExpense(ctx context.Context, id string) (models.Expense, bool, error)
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	UpdateExpenseCategory(ctx context.Context, id, category, line, source string) (bool, error)
	ListCorrections(ctx context.Context) ([]models.Correction, error)
}

// Server carries the HTTP listener plus everything the handlers need.
type Server struct {
	http.Server

	engine    Categorizer
	store     ExpenseStore
	registry  *registry.Registry
	uploads   *uploads.Store
	extractor ReceiptExtractor
	dataDir   string
	logger    logging.Logger
}

// NewServer configures routes, returning a ready-to-run server. extractor may
// be nil when no Gemini API key is configured; receipt uploads then answer
// 503 until a key is stored and the process restarts.
func NewServer(addr string, eng Categorizer, store ExpenseStore, reg *registry.Registry, up *uploads.Store, extractor ReceiptExtractor, dataDir string, logger logging.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		engine:    eng,
		store:     store,
		registry:  reg,
		uploads:   up,
		extractor: extractor,
		dataDir:   dataDir,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/categories", s.withLogging(s.handleListCategories))
	mux.HandleFunc("POST /api/categorize", s.withLogging(s.handleCategorize))
	mux.HandleFunc("POST /api/corrections", s.withLogging(s.handleRecordCorrection))
	mux.HandleFunc("GET /api/corrections", s.withLogging(s.handleListCorrections))
	mux.HandleFunc("POST /api/expenses", s.withLogging(s.handleCreateExpense))
	mux.HandleFunc("GET /api/expenses", s.withLogging(s.handleListExpenses))
	mux.HandleFunc("GET /api/expenses/{id}", s.withLogging(s.handleGetExpense))
	mux.HandleFunc("PUT /api/expenses/{id}/category", s.withLogging(s.handleUpdateExpenseCategory))
	mux.HandleFunc("GET /api/summary", s.withLogging(s.handleSummary))
	mux.HandleFunc("GET /api/export", s.withLogging(s.handleExport))
	mux.HandleFunc("POST /api/uploads", s.withLogging(s.handleUpload))
	mux.HandleFunc("GET /api/setup", s.withLogging(s.handleSetupStatus))
	mux.HandleFunc("POST /api/setup", s.withLogging(s.handleSetupSave))

	return s
}

// withLogging logs one line per completed request with the response status.
func (s *Server) withLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		s.logger.WithFields(
			logging.Field{Key: logging.FieldMethod, Value: r.Method},
			logging.Field{Key: logging.FieldPath, Value: r.URL.Path},
			logging.Field{Key: logging.FieldStatus, Value: rw.status},
			logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
		).Info("Request completed")
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code for
// request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.WithError(err).Warn("Readiness check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("database not ready"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
