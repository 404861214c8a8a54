package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"expenserule/internal/engine"
)

// Machine-readable error codes carried in every error response. Clients
// branch on the code, not the message.
const (
	codeBadRequest       = "bad_request"
	codeEmptyMerchant    = "empty_merchant"
	codeInvalidDate      = "invalid_date"
	codeUnknownCategory  = "unknown_category"
	codeUnresolved       = "categorization_unresolved"
	codeNotFound         = "not_found"
	codeUnsupportedType  = "unsupported_media_type"
	codePayloadTooLarge  = "payload_too_large"
	codeExtractionFailed = "extraction_failed"
	codeNoExtractor      = "extractor_unconfigured"
	codeInternal         = "internal_error"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	s.respondJSON(w, status, apiError{Code: code, Message: message})
}

// respondEngineError maps categorization failures onto HTTP statuses. An
// empty merchant is a malformed request, unknown categories and unresolved
// merchants are 422 outcomes the client can act on, and anything else is a
// server fault.
func (s *Server) respondEngineError(w http.ResponseWriter, err error) {
	var unknown *engine.UnknownCategoryError
	var unresolved *engine.UnresolvedError
	var persistence *engine.PersistenceError

	switch {
	case errors.Is(err, engine.ErrEmptyMerchant):
		s.respondError(w, http.StatusBadRequest, codeEmptyMerchant, "merchant is required")
	case errors.As(err, &unknown):
		s.respondError(w, http.StatusUnprocessableEntity, codeUnknownCategory, unknown.Error())
	case errors.As(err, &unresolved):
		s.respondError(w, http.StatusUnprocessableEntity, codeUnresolved, unresolved.Error())
	case errors.As(err, &persistence):
		s.logger.WithError(err).Error("Correction write failed")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to save correction")
	default:
		s.logger.WithError(err).Error("Categorization failed")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "categorization failed")
	}
}

// decodeJSON reads a JSON request body into dst. Bodies are capped at 1 MiB;
// the upload endpoint has its own larger limit.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}
