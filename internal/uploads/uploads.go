// Package uploads persists receipt files submitted through the API.
// Files are stored flat in one directory under generated names so
// nothing from the original filename reaches the filesystem.
package uploads

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"expenserule/internal/logging"
	"expenserule/internal/models"

	"github.com/google/uuid"
)

// extByMIME maps the accepted receipt MIME types to the extension
// used on disk.
var extByMIME = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// ExtensionFor returns the on-disk extension for a MIME type and
// whether the type is accepted for upload.
func ExtensionFor(mimeType string) (string, bool) {
	ext, ok := extByMIME[strings.ToLower(strings.TrimSpace(mimeType))]
	return ext, ok
}

// Store writes uploads into a single directory.
type Store struct {
	dir    string
	logger logging.Logger
}

// New creates the uploads directory if needed. The directory is
// user-only since receipts routinely contain card fragments and
// addresses.
func New(dir string, logger logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, models.PermissionDataDir); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the directory uploads are stored in.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes data under a fresh random name with the given extension
// and returns the upload id and the full on-disk path.
func (s *Store) Save(ext string, data []byte) (string, string, error) {
	u := uuid.New()
	id := hex.EncodeToString(u[:])
	path := filepath.Join(s.dir, id+ext)

	if err := os.WriteFile(path, data, models.PermissionUploadFile); err != nil {
		return "", "", fmt.Errorf("writing upload: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldUploadID, Value: id},
		logging.Field{Key: logging.FieldPath, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(data)},
	).Info("Receipt file stored")

	return id, path, nil
}
