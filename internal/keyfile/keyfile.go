// Package keyfile stores the Gemini API key inside the data directory
// so the server can run without environment configuration. The
// environment variable still wins when both are set.
package keyfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"expenserule/internal/models"
)

// FileName is the key file's name inside the data directory.
const FileName = "gemini_api_key"

// Path returns the key file path inside dataDir.
func Path(dataDir string) string {
	return filepath.Join(dataDir, FileName)
}

// Save writes the key with user-only permissions, creating dataDir if
// needed.
func Save(dataDir, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key is empty")
	}

	if err := os.MkdirAll(dataDir, models.PermissionDataDir); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(Path(dataDir), []byte(key+"\n"), models.PermissionKeyFile); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}
	return nil
}

// Load reads the stored key. A missing file surfaces as
// fs.ErrNotExist so callers can fall back to other sources.
func Load(dataDir string) (string, error) {
	data, err := os.ReadFile(Path(dataDir))
	if err != nil {
		return "", err
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("key file %s is empty", Path(dataDir))
	}
	return key, nil
}

// Exists reports whether a key file is present.
func Exists(dataDir string) bool {
	info, err := os.Stat(Path(dataDir))
	return err == nil && !info.IsDir()
}
