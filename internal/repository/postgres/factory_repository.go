package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/andresuchdata/fbaplan/backend-go/internal/repository"
)

type factoryRepository struct {
	db *DB
}

func NewFactoryRepository(db *DB) repository.FactoryRepository {
	return &factoryRepository{db: db}
}

func (r *factoryRepository) ListFactoryInventory(ctx context.Context, brand, month string) ([]domain.FactoryInventory, error) {
	query := `
		SELECT brand_name, sku_id, month, quantity, additional_order
		FROM factory_inventory
		WHERE brand_name = $1 AND month = $2
	`

	var inventory []domain.FactoryInventory
	if err := r.db.SelectContext(ctx, &inventory, query, brand, month); err != nil {
		return nil, fmt.Errorf("error listing factory inventory: %w", err)
	}
	return inventory, nil
}

func (r *factoryRepository) ListActualShipments(ctx context.Context, brand string, from, to time.Time) ([]domain.ActualShipment, error) {
	query := `
		SELECT a.sku_id, a.ship_date, a.quantity
		FROM actual_shipments a
		JOIN skus s ON s.id = a.sku_id
		WHERE s.brand_name = $1 AND a.ship_date >= $2::date AND a.ship_date < $3::date
		ORDER BY a.ship_date
	`

	var shipments []domain.ActualShipment
	err := r.db.SelectContext(ctx, &shipments, query, brand, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("error listing actual shipments: %w", err)
	}
	return shipments, nil
}
