package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"expenserule/internal/logging"
	"expenserule/internal/models"
)

// GetCorrection returns the remembered category for a normalized merchant
// key. Absence is ("", false, nil), not an error.
func (r *Repository) GetCorrection(ctx context.Context, merchantKey string) (string, bool, error) {
	var category string
	err := r.db.QueryRowContext(ctx,
		`SELECT category FROM corrections WHERE merchant_key = ?`, merchantKey,
	).Scan(&category)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get correction: %w", err)
	}
	return category, true, nil
}

// UpsertCorrection stores the category for a merchant key, replacing any
// previous value. The ON CONFLICT upsert is a single atomic statement, so
// concurrent writers for the same key resolve to last-write-wins without a
// read-modify-write race.
func (r *Repository) UpsertCorrection(ctx context.Context, merchantKey, category string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO corrections (merchant_key, category, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (merchant_key)
		 DO UPDATE SET category = excluded.category, updated_at = excluded.updated_at`,
		merchantKey, category, now,
	)
	if err != nil {
		return fmt.Errorf("upsert correction: %w", err)
	}

	r.logger.Debug("correction stored",
		logging.Field{Key: logging.FieldMerchantKey, Value: merchantKey},
		logging.Field{Key: logging.FieldCategory, Value: category})
	return nil
}

// ListCorrections returns every stored correction, ordered by merchant key.
func (r *Repository) ListCorrections(ctx context.Context) ([]models.Correction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT merchant_key, category, updated_at FROM corrections ORDER BY merchant_key`)
	if err != nil {
		return nil, fmt.Errorf("list corrections: %w", err)
	}
	defer rows.Close()

	var corrections []models.Correction
	for rows.Next() {
		var c models.Correction
		var updatedAt string
		if err := rows.Scan(&c.MerchantKey, &c.Category, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan correction: %w", err)
		}
		c.UpdatedAt = parseStoredTime(updatedAt)
		corrections = append(corrections, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate corrections: %w", err)
	}
	return corrections, nil
}

// DeleteCorrection removes a stored correction. Deleting an absent key is a
// no-op.
func (r *Repository) DeleteCorrection(ctx context.Context, merchantKey string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM corrections WHERE merchant_key = ?`, merchantKey)
	if err != nil {
		return fmt.Errorf("delete correction: %w", err)
	}
	return nil
}

func parseStoredTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
