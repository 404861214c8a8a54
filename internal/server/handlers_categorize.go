package server

import (
	"net/http"
	"strings"

	"expenserule/internal/models"
)

func (s *Server) handleListCategories(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, s.registry.All())
}

type categorizeRequest struct {
	Merchant string `json:"merchant"`
}

type categorizeResponse struct {
	Merchant      string `json:"merchant"`
	Category      string `json:"category"`
	ScheduleCLine string `json:"schedule_c_line"`
	Source        string `json:"source"`
}

func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	var req categorizeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body")
		return
	}

	res, err := s.engine.Categorize(r.Context(), req.Merchant)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, categorizeResponse{
		Merchant:      strings.TrimSpace(req.Merchant),
		Category:      res.Category.Name,
		ScheduleCLine: res.Category.Line,
		Source:        string(res.Source),
	})
}

type correctionRequest struct {
	Merchant string `json:"merchant"`
	Category string `json:"category"`
}

type correctionResponse struct {
	MerchantKey   string `json:"merchant_key"`
	Category      string `json:"category"`
	ScheduleCLine string `json:"schedule_c_line"`
}

func (s *Server) handleRecordCorrection(w http.ResponseWriter, r *http.Request) {
	var req correctionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.respondError(w, http.StatusBadRequest, codeBadRequest, "invalid JSON body")
		return
	}

	cat, err := s.engine.RecordCorrection(r.Context(), req.Merchant, req.Category)
	if err != nil {
		s.respondEngineError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, correctionResponse{
		MerchantKey:   models.NormalizeMerchant(req.Merchant),
		Category:      cat.Name,
		ScheduleCLine: cat.Line,
	})
}

func (s *Server) handleListCorrections(w http.ResponseWriter, r *http.Request) {
	corrections, err := s.store.ListCorrections(r.Context())
	if err != nil {
		s.logger.WithError(err).Error("Failed to list corrections")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to list corrections")
		return
	}
	if corrections == nil {
		corrections = []models.Correction{}
	}
	s.respondJSON(w, http.StatusOK, corrections)
}
