package server

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/shopspring/decimal"

	"expenserule/internal/dateutils"
	"expenserule/internal/engine"
	"expenserule/internal/logging"
	"expenserule/internal/models"
	"expenserule/internal/uploads"
)

// multipartSlack covers multipart boundaries and part headers on top of the
// receipt size cap.
const multipartSlack = 1 << 20

type uploadResponse struct {
	UploadID       string          `json:"upload_id"`
	Merchant       string          `json:"merchant"`
	Date           string          `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	Category       *string         `json:"category"`
	ScheduleCLine  *string         `json:"schedule_c_line"`
	CategorySource *string         `json:"category_source"`
}

// handleUpload stores a receipt file, extracts merchant, date and amount from
// it, and runs the merchant through the categorization chain. An unresolved
// merchant is not an error here: the categorization fields come back null and
// the caller picks a category manually.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.extractor == nil {
		s.respondError(w, http.StatusServiceUnavailable, codeNoExtractor,
			"no Gemini API key configured; store one via POST /api/setup and restart")
		return
	}

	if r.ContentLength > models.MaxUploadBytes+multipartSlack {
		s.respondError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge, "receipt exceeds the 20 MiB limit")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, models.MaxUploadBytes+multipartSlack)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge, "receipt exceeds the 20 MiB limit")
			return
		}
		s.respondError(w, http.StatusBadRequest, codeBadRequest, `multipart form with a "file" part is required`)
		return
	}
	defer file.Close()

	mimeType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil {
		mimeType = header.Header.Get("Content-Type")
	}
	ext, ok := uploads.ExtensionFor(mimeType)
	if !ok {
		s.respondError(w, http.StatusUnsupportedMediaType, codeUnsupportedType,
			"receipt must be image/jpeg, image/png or application/pdf")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.logger.WithError(err).Error("Failed to read upload")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to read upload")
		return
	}
	if int64(len(data)) > models.MaxUploadBytes {
		s.respondError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge, "receipt exceeds the 20 MiB limit")
		return
	}

	uploadID, _, err := s.uploads.Save(ext, data)
	if err != nil {
		s.logger.WithError(err).Error("Failed to store receipt")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "failed to store receipt")
		return
	}

	receipt, err := s.extractor.ExtractReceipt(r.Context(), mimeType, data)
	if err != nil {
		s.logger.WithError(err).WithField(logging.FieldUploadID, uploadID).Error("Receipt extraction failed")
		s.respondError(w, http.StatusBadGateway, codeExtractionFailed, "receipt extraction failed")
		return
	}

	date := receipt.Date
	if normalized, err := dateutils.Normalize(receipt.Date); err == nil {
		date = normalized
	} else {
		s.logger.WithField(logging.FieldUploadID, uploadID).Warn("Extracted date not normalized, keeping raw value")
	}

	resp := uploadResponse{
		UploadID: uploadID,
		Merchant: receipt.Merchant,
		Date:     date,
		Amount:   receipt.Amount,
	}

	res, err := s.engine.Categorize(r.Context(), receipt.Merchant)
	switch {
	case err == nil:
		source := string(res.Source)
		resp.Category = &res.Category.Name
		resp.ScheduleCLine = &res.Category.Line
		resp.CategorySource = &source
	case isUnresolved(err):
		s.logger.WithFields(
			logging.Field{Key: logging.FieldUploadID, Value: uploadID},
			logging.Field{Key: logging.FieldMerchant, Value: receipt.Merchant},
		).Info("Merchant unresolved, manual category selection needed")
	default:
		s.logger.WithError(err).Error("Categorization failed")
		s.respondError(w, http.StatusInternalServerError, codeInternal, "categorization failed")
		return
	}

	s.respondJSON(w, http.StatusCreated, resp)
}

func isUnresolved(err error) bool {
	var unresolved *engine.UnresolvedError
	return errors.As(err, &unresolved)
}
