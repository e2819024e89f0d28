package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/timeaxis/timeaxis/internal/models"
)

// Provider repository errors.
var ErrProviderNotFound = errors.New("AI provider not found")

// ProviderRepository handles AI provider persistence.
type ProviderRepository struct {
	db *DB
}

// NewProviderRepository creates a new ProviderRepository.
func NewProviderRepository(db *DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// Create inserts a provider, assigning an id when missing.
func (r *ProviderRepository) Create(ctx context.Context, provider *models.AIProvider) error {
	if err := provider.Validate(); err != nil {
		return err
	}
	if provider.ID == "" {
		provider.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO ai_providers (id, name, model_id, api_key, base_url, position)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM ai_providers))
	`, provider.ID, provider.Name, provider.ModelID, provider.APIKey, provider.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to insert provider: %w", err)
	}
	return nil
}

// Get retrieves a provider by id.
func (r *ProviderRepository) Get(ctx context.Context, id string) (*models.AIProvider, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, model_id, api_key, base_url FROM ai_providers WHERE id = ?
	`, id)
	return scanProvider(row)
}

// List returns all providers in insertion order.
func (r *ProviderRepository) List(ctx context.Context) ([]models.AIProvider, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, model_id, api_key, base_url FROM ai_providers ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	defer rows.Close()

	var providers []models.AIProvider
	for rows.Next() {
		var p models.AIProvider
		if err := rows.Scan(&p.ID, &p.Name, &p.ModelID, &p.APIKey, &p.BaseURL); err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		providers = append(providers, p)
	}
	return providers, rows.Err()
}

// Update replaces a provider record.
func (r *ProviderRepository) Update(ctx context.Context, provider models.AIProvider) error {
	if err := provider.Validate(); err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE ai_providers SET name = ?, model_id = ?, api_key = ?, base_url = ? WHERE id = ?
	`, provider.Name, provider.ModelID, provider.APIKey, provider.BaseURL, provider.ID)
	if err != nil {
		return fmt.Errorf("failed to update provider: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if affected == 0 {
		return ErrProviderNotFound
	}
	return nil
}

// Delete removes a provider by id.
func (r *ProviderRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ai_providers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete provider: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete: %w", err)
	}
	if affected == 0 {
		return ErrProviderNotFound
	}
	return nil
}

func scanProvider(row *sql.Row) (*models.AIProvider, error) {
	var p models.AIProvider
	err := row.Scan(&p.ID, &p.Name, &p.ModelID, &p.APIKey, &p.BaseURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan provider: %w", err)
	}
	return &p, nil
}
