// Package common contains shared functionality for command handlers
package common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"expenserule/internal/config"
	"expenserule/internal/container"
	"expenserule/internal/logging"
)

// WithContainer builds the application container, runs fn, and closes the
// container afterwards. Commands get their dependencies from one place.
func WithContainer(ctx context.Context, cfg *config.Config, log logging.Logger, fn func(*container.Container) error) error {
	c, err := container.NewContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		if cerr := c.Close(); cerr != nil {
			log.WithError(cerr).Warn("Failed to close application cleanly")
		}
	}()
	return fn(c)
}

// PrintJSON writes v to w as indented JSON.
func PrintJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
