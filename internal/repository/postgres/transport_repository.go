package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/andresuchdata/fbaplan/backend-go/internal/repository"
)

type transportConfigRepository struct {
	db *DB
}

func NewTransportConfigRepository(db *DB) repository.TransportConfigRepository {
	return &transportConfigRepository{db: db}
}

func (r *transportConfigRepository) GetTransportConfig(ctx context.Context, brand string) (*domain.TransportConfig, error) {
	query := `
		SELECT brand_name, standard_shipping_days, standard_shelf_days,
		       oversized_shipping_days, oversized_shelf_days
		FROM transport_configs
		WHERE brand_name = $1
	`

	var cfg domain.TransportConfig
	if err := r.db.GetContext(ctx, &cfg, query, brand); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error getting transport config: %w", err)
	}
	return &cfg, nil
}
