// Package lookup provides the built-in merchant lookup table: a static,
// read-only mapping of known merchant name fragments to Schedule C
// categories. It is the second tier of the categorization chain, after
// correction memory and before inference.
package lookup

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"expenserule/internal/logging"
	"expenserule/internal/models"
	"expenserule/internal/registry"
)

//go:embed merchants.yaml
var embeddedTable []byte

// tableFile is the YAML layout of a merchant table file.
type tableFile struct {
	Merchants map[string]string `yaml:"merchants"`
}

// Table maps normalized merchant keys to category names. Construction
// validates every entry against the registry; after that the table never
// changes and is safe for concurrent readers.
type Table struct {
	entries map[string]string
	keys    []string
	logger  logging.Logger
}

// Load builds the table from the embedded entries.
func Load(reg *registry.Registry, logger logging.Logger) (*Table, error) {
	return LoadWithOverrides(reg, "", logger)
}

// LoadWithOverrides builds the table from the embedded entries, then merges
// entries from the YAML file at overridePath on top. A missing override file
// is tolerated so a fresh install works without one.
func LoadWithOverrides(reg *registry.Registry, overridePath string, logger logging.Logger) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(embeddedTable, &file); err != nil {
		return nil, fmt.Errorf("error parsing built-in merchant table: %w", err)
	}

	entries := file.Merchants
	if overridePath != "" {
		overrides, err := loadOverrideFile(overridePath, logger)
		if err != nil {
			return nil, err
		}
		for merchant, category := range overrides {
			entries[merchant] = category
		}
	}

	return NewFromMap(entries, reg, logger)
}

func loadOverrideFile(path string, logger logging.Logger) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("merchant override file not found, using built-in table only",
				logging.Field{Key: logging.FieldPath, Value: path})
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("error reading merchant override file: %w", err)
	}

	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing merchant override file %s: %w", path, err)
	}
	return file.Merchants, nil
}

// NewFromMap builds a table from raw merchant -> category pairs. Keys are
// normalized; categories must name registry entries and are stored in their
// canonical spelling.
func NewFromMap(m map[string]string, reg *registry.Registry, logger logging.Logger) (*Table, error) {
	t := &Table{
		entries: make(map[string]string, len(m)),
		logger:  logger,
	}

	for merchant, category := range m {
		key := models.NormalizeMerchant(merchant)
		if key == "" {
			return nil, fmt.Errorf("merchant table contains an empty key")
		}
		canonical, ok := reg.ByName(category)
		if !ok {
			return nil, fmt.Errorf("merchant table entry %q names unknown category %q", key, category)
		}
		t.entries[key] = canonical.Name
	}

	// Longest key first so "uber eats" beats "uber" in the substring pass.
	t.keys = make([]string, 0, len(t.entries))
	for k := range t.entries {
		t.keys = append(t.keys, k)
	}
	sort.Slice(t.keys, func(i, j int) bool {
		if len(t.keys[i]) != len(t.keys[j]) {
			return len(t.keys[i]) > len(t.keys[j])
		}
		return t.keys[i] < t.keys[j]
	})

	logger.Debug("merchant lookup table ready",
		logging.Field{Key: logging.FieldCount, Value: len(t.entries)})
	return t, nil
}

// Find returns the category for a merchant, or false when no entry matches.
// The normalized merchant is tried exactly first; failing that, a table key
// contained anywhere in the merchant matches, so statement descriptors like
// "UBER *TRIP HELP.UBER.COM" still resolve.
func (t *Table) Find(merchant string) (string, bool) {
	key := models.NormalizeMerchant(merchant)
	if key == "" {
		return "", false
	}

	if category, ok := t.entries[key]; ok {
		return category, true
	}

	for _, k := range t.keys {
		if strings.Contains(key, k) {
			return t.entries[k], true
		}
	}
	return "", false
}

// Len returns the number of table entries.
func (t *Table) Len() int {
	return len(t.entries)
}
