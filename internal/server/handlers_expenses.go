package server

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"expenserule/internal/dateutils"
	"expenserule/internal/engine"
	"expenserule/internal/export"
	"expenserule/internal/logging"
	"expenserule/internal/models"
	"expenserule/internal/report"
)

type createExpenseRequest struct {
	Merchant string          `json:"merchant"`
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Notes    string          `json:"notes"`
}

// handleCreateExpense records a new expense. When the request names a
// category it is validated against the registry and stored with source
// "manual"; otherwise the merchant runs through the categorization chain and
// an unresolved outcome leaves nothing created.
func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Merchant) == "" {
		s.respondError(w, http.StatusBadRequest, codeEmptyMerchant, "merchant is required")
		return
	}

	date, err := dateutils.Normalize(req.Date)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, codeInvalidDate, err.Error())
		return
	}

	var category, line, source string
	if explicit := strings.TrimSpace(req.Category); explicit != "" {
		cat, ok := s.registry.ByName(explicit)
		if !ok {
			s.respondError(w, http.StatusUnprocessableEntity, codeUnknownCategory,
				(&engine.UnknownCategoryError{Name: explicit}).Error())
			return
		}
		category, line, source = cat.Name, cat.Line, string(engine.SourceManual)
	} else {
		res, err := s.engine.Categorize(r.Context(), req.Merchant)
		if err != nil {
			s.respondEngineError(w, err)
			return
		}
		category, line, source = res.Category.Name, res.Category.Line, string(res.Source)
	}

	e := models.NewExpense(req.Merchant, date, req.Amount, req.Notes)
	e.Category = category
	e.ScheduleCLine = line
	e.Source = source

	if err := s.store.InsertExpense(r.Context(), e); err != nil {
		s.logger.WithError(err).Error("Failed to insert expense")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to save expense")
		return
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldExpenseID, Value: e.ID},
		logging.Field{Key: logging.FieldMerchant, Value: e.Merchant},
		logging.Field{Key: logging.FieldCategory, Value: e.Category},
		logging.Field{Key: logging.FieldSource, Value: e.Source},
	).Info("Expense created")

	s.respondJSON(w, http.StatusCreated, e)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.store.ListExpenses(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list expenses")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to list expenses")
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	s.respondJSON(w, http.StatusOK, expenses)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	e, ok, err := s.store.GetExpense(r.Context(), r.PathValue("id"))
	if err != nil {
		s.logger.WithError(err).Error("Failed to load expense")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to load expense")
		return
	}
	if !ok {
		s.respondError(w, http.StatusNotFound, codeNotFound, "expense not found")
		return
	}
	s.respondJSON(w, http.StatusOK, e)
}

type updateCategoryRequest struct {
	Category string `json:"category"`
}

// handleUpdateExpenseCategory reassigns an expense's category. The correction
// is recorded before the row is touched so that future lookups for the same
// merchant follow the user's choice; a correction failure aborts the edit.
func (s *Server) handleUpdateExpenseCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateCategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body")
		return
	}

	e, ok, err := s.store.GetExpense(r.Context(), id)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load expense")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to load expense")
		return
	}
	if !ok {
		s.respondError(w, http.StatusNotFound, codeNotFound, "expense not found")
		return
	}

	cat, err := s.engine.RecordCorrection(r.Context(), e.Merchant, req.Category)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	updated, err := s.store.UpdateExpenseCategory(r.Context(), id, cat.Name, cat.Line, string(engine.SourceCorrection))
	if err != nil {
		s.logger.WithError(err).Error("Failed to update expense category")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to update expense")
		return
	}
	if !updated {
		s.respondError(w, http.StatusNotFound, codeNotFound, "expense not found")
		return
	}

	e.Category = cat.Name
	e.ScheduleCLine = cat.Line
	e.Source = string(engine.SourceCorrection)
	s.respondJSON(w, http.StatusOK, e)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.store.ListExpenses(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list expenses")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to build summary")
		return
	}

	totals := report.BuildSummary(s.registry, expenses)
	if totals == nil {
		totals = []models.CategoryTotal{}
	}
	s.respondJSON(w, http.StatusOK, totals)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.store.ListExpenses(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list expenses")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to export expenses")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="expenses.csv"`)
	if err := export.Write(w, expenses); err != nil {
		// Headers are already out; all we can do is log.
		s.logger.WithError(err).Error("CSV export failed mid-stream")
	}
}
