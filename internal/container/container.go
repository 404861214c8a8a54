// Package container provides dependency injection for the expenserule
// application. It centralizes the creation and wiring of all
// application dependencies, making them explicit and testable.
package container

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"expenserule/internal/config"
	"expenserule/internal/engine"
	"expenserule/internal/gemini"
	"expenserule/internal/keyfile"
	"expenserule/internal/logging"
	"expenserule/internal/lookup"
	"expenserule/internal/registry"
	"expenserule/internal/storage"
	"expenserule/internal/uploads"
)

// Container holds all application dependencies and provides methods to
// access them. It is immutable after creation; fields are private and
// only reachable through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	repository *storage.Repository
	registry   *registry.Registry
	table      *lookup.Table
	gemini     *gemini.Client
	engine     *engine.Engine
	uploads    *uploads.Store
}

// NewContainer creates and wires all application dependencies. The
// Gemini client is only constructed when an API key can be resolved,
// first from configuration (GEMINI_API_KEY included) and then from the
// key file inside the data directory. Without a key the engine runs
// with correction memory and the lookup table only.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by everything else.
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	reg := registry.New()

	repo, err := storage.New(cfg.Database.Path, logger)
	if err != nil {
		return nil, fmt.Errorf("opening expense storage: %w", err)
	}

	table, err := loadLookupTable(cfg, reg, logger)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}

	var geminiClient *gemini.Client
	var suggester engine.Suggester
	apiKey, err := resolveAPIKey(cfg)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	if apiKey != "" {
		client, err := gemini.NewClient(ctx, apiKey, cfg.AI.Model, logger)
		if err != nil {
			_ = repo.Close()
			return nil, fmt.Errorf("initializing Gemini client: %w", err)
		}
		geminiClient = client
		suggester = client
		logger.Info("Model inference enabled")
	} else {
		logger.Info("No Gemini API key configured, model inference disabled")
	}

	eng := engine.New(reg, repo, table, suggester, logger)

	uploadStore, err := uploads.New(cfg.Uploads.Dir, logger)
	if err != nil {
		if geminiClient != nil {
			_ = geminiClient.Close()
		}
		_ = repo.Close()
		return nil, fmt.Errorf("preparing uploads directory: %w", err)
	}

	logger.Info("Container initialized successfully",
		logging.Field{Key: logging.FieldCount, Value: table.Len()},
		logging.Field{Key: "inference_enabled", Value: suggester != nil})

	return &Container{
		logger:     logger,
		config:     cfg,
		repository: repo,
		registry:   reg,
		table:      table,
		gemini:     geminiClient,
		engine:     eng,
		uploads:    uploadStore,
	}, nil
}

func loadLookupTable(cfg *config.Config, reg *registry.Registry, logger logging.Logger) (*lookup.Table, error) {
	if cfg.Lookup.File != "" {
		return lookup.LoadWithOverrides(reg, cfg.Lookup.File, logger)
	}
	return lookup.Load(reg, logger)
}

// resolveAPIKey looks the Gemini API key up in configuration first and
// falls back to the key file. A missing key file just means no key.
func resolveAPIKey(cfg *config.Config) (string, error) {
	if cfg.AI.APIKey != "" {
		return cfg.AI.APIKey, nil
	}

	key, err := keyfile.Load(cfg.Data.Directory)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("reading key file: %w", err)
	}
	return key, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetRepository returns the expense and correction storage.
func (c *Container) GetRepository() *storage.Repository {
	return c.repository
}

// GetRegistry returns the Schedule C category registry.
func (c *Container) GetRegistry() *registry.Registry {
	return c.registry
}

// GetLookup returns the merchant lookup table.
func (c *Container) GetLookup() *lookup.Table {
	return c.table
}

// GetEngine returns the categorization engine.
func (c *Container) GetEngine() *engine.Engine {
	return c.engine
}

// GetUploads returns the receipt upload store.
func (c *Container) GetUploads() *uploads.Store {
	return c.uploads
}

// GetGemini returns the Gemini client, or nil when no API key is
// configured.
func (c *Container) GetGemini() *gemini.Client {
	return c.gemini
}

// Close releases container resources.
func (c *Container) Close() error {
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil {
			c.logger.WithError(err).Warn("Failed to close Gemini client")
		}
	}
	if c.repository != nil {
		if err := c.repository.Close(); err != nil {
			return err
		}
	}
	c.logger.Info("Container closed")
	return nil
}
