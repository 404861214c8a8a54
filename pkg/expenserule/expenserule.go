// Package expenserule is the embedding entry point: open the application
// once, categorize merchants and record corrections, then close. The CLI and
// HTTP server wrap the same wiring; this package exposes it as a library.
package expenserule

import (
	"context"

	"expenserule/internal/config"
	"expenserule/internal/container"
	"expenserule/internal/engine"
	"expenserule/internal/registry"
)

// Result is a categorization outcome. Aliased so errors.As checks against the
// engine's error types keep working for embedding users.
type Result = engine.Result

// Category is one Schedule C expense category.
type Category = registry.Category

// App is a ready-to-use categorization application: the engine, its
// correction memory and the expense store wired over resolved configuration.
type App struct {
	c *container.Container
}

// Open builds an App from the standard configuration chain: defaults, then
// an optional config file, then environment variables.
func Open(ctx context.Context) (*App, error) {
	config.LoadEnv()

	cfg, err := config.InitializeConfig()
	if err != nil {
		return nil, err
	}
	return OpenWith(ctx, cfg)
}

// OpenWith builds an App over an explicit configuration.
func OpenWith(ctx context.Context, cfg *config.Config) (*App, error) {
	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &App{c: c}, nil
}

// Categorize resolves a merchant through the chain: recorded corrections,
// then the merchant table, then model inference when configured.
func (a *App) Categorize(ctx context.Context, merchant string) (Result, error) {
	return a.c.GetEngine().Categorize(ctx, merchant)
}

// RecordCorrection stores a permanent category override for a merchant and
// returns the canonical category.
func (a *App) RecordCorrection(ctx context.Context, merchant, category string) (Category, error) {
	return a.c.GetEngine().RecordCorrection(ctx, merchant, category)
}

// Categories lists the Schedule C registry in its fixed order.
func (a *App) Categories() []Category {
	return a.c.GetRegistry().All()
}

// Close releases the database and the model client.
func (a *App) Close() error {
	return a.c.Close()
}
