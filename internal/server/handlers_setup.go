package server

import (
	"net/http"
	"strings"

	"expenserule/internal/keyfile"
	"expenserule/internal/logging"
)

type setupStatusResponse struct {
	Configured bool `json:"configured"`
}

// handleSetupStatus reports whether inference can run: either a key was
// loaded at startup (the extractor exists) or one has since been written to
// the key file.
func (s *Server) handleSetupStatus(w http.ResponseWriter, _ *http.Request) {
	configured := s.extractor != nil || keyfile.Exists(s.dataDir)
	s.respondJSON(w, http.StatusOK, setupStatusResponse{Configured: configured})
}

type setupRequest struct {
	APIKey string `json:"api_key"`
}

// handleSetupSave stores the Gemini API key in the key file. The key is read
// at startup, so a running server without an extractor keeps answering 503 on
// uploads until restarted.
func (s *Server) handleSetupSave(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.APIKey) == "" {
		s.respondError(w, http.StatusBadRequest, codeBadRequest, "api_key is required")
		return
	}

	if err := keyfile.Save(s.dataDir, req.APIKey); err != nil {
		s.logger.WithError(err).Error("Failed to store API key")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to store API key")
		return
	}

	s.logger.WithField(logging.FieldPath, keyfile.Path(s.dataDir)).Info("Gemini API key stored")
	s.respondJSON(w, http.StatusCreated, setupStatusResponse{Configured: true})
}
