package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/andresuchdata/fbaplan/backend-go/internal/planning"
	"github.com/andresuchdata/fbaplan/backend-go/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type shipmentRepository struct {
	db *DB
}

func NewShipmentRepository(db *DB) repository.ShipmentRepository {
	return &shipmentRepository{db: db}
}

const shipmentColumns = `id, brand_name, tracking_number, category, status, ship_date,
	expected_arrival_date, actual_arrival_date, created_at, updated_at`

func (r *shipmentRepository) ListShipments(ctx context.Context, brand string, status domain.ShipmentStatus) ([]domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE brand_name = $1`
	args := []interface{}{brand}

	if status != "" {
		query += " AND status = $2"
		args = append(args, string(status))
	}
	query += " ORDER BY expected_arrival_date NULLS LAST, tracking_number"

	var shipments []domain.Shipment
	if err := r.db.SelectContext(ctx, &shipments, query, args...); err != nil {
		return nil, fmt.Errorf("error listing shipments: %w", err)
	}
	if len(shipments) == 0 {
		return shipments, nil
	}

	ids := make([]int64, len(shipments))
	for i, s := range shipments {
		ids[i] = s.ID
	}

	items, err := loadItems(ctx, r.db, ids)
	if err != nil {
		return nil, err
	}
	for i := range shipments {
		shipments[i].Items = items[shipments[i].ID]
	}

	return shipments, nil
}

func (r *shipmentRepository) GetShipment(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error) {
	shipment, err := getShipment(ctx, r.db, brand, trackingNumber, false)
	if err != nil {
		return nil, err
	}

	items, err := loadItems(ctx, r.db, []int64{shipment.ID})
	if err != nil {
		return nil, err
	}
	shipment.Items = items[shipment.ID]

	return shipment, nil
}

func (r *shipmentRepository) CreateShipment(ctx context.Context, shipment *domain.Shipment) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO shipments (brand_name, tracking_number, category, status, ship_date, expected_arrival_date)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, created_at, updated_at
		`
		err := tx.QueryRowxContext(ctx, query,
			shipment.BrandName,
			shipment.TrackingNumber,
			string(shipment.Category),
			string(shipment.Status),
			shipment.ShipDate,
			shipment.ExpectedArrivalDate,
		).Scan(&shipment.ID, &shipment.CreatedAt, &shipment.UpdatedAt)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return fmt.Errorf("shipment %s: %w", shipment.TrackingNumber, domain.ErrDuplicate)
			}
			return fmt.Errorf("error inserting shipment: %w", err)
		}

		for i := range shipment.Items {
			item := &shipment.Items[i]
			item.ShipmentID = shipment.ID

			if item.SKUID == 0 {
				if err := tx.GetContext(ctx, &item.SKUID,
					`SELECT id FROM skus WHERE brand_name = $1 AND sku = $2`,
					shipment.BrandName, item.SKU,
				); err != nil {
					if errors.Is(err, sql.ErrNoRows) {
						return fmt.Errorf("sku %s: %w", item.SKU, domain.ErrNotFound)
					}
					return fmt.Errorf("error resolving sku %s: %w", item.SKU, err)
				}
			}

			err := tx.QueryRowxContext(ctx,
				`INSERT INTO shipment_items (shipment_id, sku_id, quantity) VALUES ($1, $2, $3) RETURNING id`,
				item.ShipmentID, item.SKUID, item.Quantity,
			).Scan(&item.ID)
			if err != nil {
				return fmt.Errorf("error inserting shipment item: %w", err)
			}

			if shipment.Status == domain.ShipmentShipping {
				if _, err := tx.ExecContext(ctx,
					`UPDATE skus SET in_transit_stock = in_transit_stock + $1 WHERE id = $2`,
					item.Quantity, item.SKUID,
				); err != nil {
					return fmt.Errorf("error updating in-transit stock: %w", err)
				}
			}
		}

		return nil
	})
}

func (r *shipmentRepository) ConfirmArrival(
	ctx context.Context,
	brand, trackingNumber string,
	actual time.Time,
	status domain.ShipmentStatus,
) (*domain.Shipment, error) {
	var shipment *domain.Shipment

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		shipment, err = getShipment(ctx, tx, brand, trackingNumber, true)
		if err != nil {
			return err
		}
		if shipment.Status.HasArrived() {
			return fmt.Errorf("shipment %s: %w", trackingNumber, domain.ErrAlreadyArrived)
		}

		actualDate := planning.Day(actual)
		if _, err := tx.ExecContext(ctx,
			`UPDATE shipments SET status = $1, actual_arrival_date = $2, updated_at = NOW() WHERE id = $3`,
			string(status), actualDate, shipment.ID,
		); err != nil {
			return fmt.Errorf("error updating shipment: %w", err)
		}
		shipment.Status = status
		shipment.ActualArrivalDate = &actualDate

		return r.adjustItems(ctx, tx, shipment, planning.ApplyArrival)
	})
	if err != nil {
		return nil, err
	}

	return shipment, nil
}

func (r *shipmentRepository) UndoArrival(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error) {
	var shipment *domain.Shipment

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		shipment, err = getShipment(ctx, tx, brand, trackingNumber, true)
		if err != nil {
			return err
		}
		if !shipment.Status.HasArrived() {
			return fmt.Errorf("shipment %s: %w", trackingNumber, domain.ErrNotArrived)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE shipments SET status = $1, actual_arrival_date = NULL, updated_at = NOW() WHERE id = $2`,
			string(domain.ShipmentShipping), shipment.ID,
		); err != nil {
			return fmt.Errorf("error updating shipment: %w", err)
		}
		shipment.Status = domain.ShipmentShipping
		shipment.ActualArrivalDate = nil

		return r.adjustItems(ctx, tx, shipment, planning.UndoArrival)
	})
	if err != nil {
		return nil, err
	}

	return shipment, nil
}

// adjustItems loads the shipment items and applies adjust to each SKU's stock.
func (r *shipmentRepository) adjustItems(
	ctx context.Context,
	tx *sqlx.Tx,
	shipment *domain.Shipment,
	adjust func(domain.SKU, int) domain.SKU,
) error {
	items, err := loadItems(ctx, tx, []int64{shipment.ID})
	if err != nil {
		return err
	}
	shipment.Items = items[shipment.ID]

	for _, item := range shipment.Items {
		var sku domain.SKU
		if err := tx.GetContext(ctx, &sku,
			`SELECT id, fba_stock, in_transit_stock FROM skus WHERE id = $1 FOR UPDATE`,
			item.SKUID,
		); err != nil {
			return fmt.Errorf("error locking sku %d: %w", item.SKUID, err)
		}

		sku = adjust(sku, item.Quantity)
		if _, err := tx.ExecContext(ctx,
			`UPDATE skus SET fba_stock = $1, in_transit_stock = $2 WHERE id = $3`,
			sku.FBAStock, sku.InTransitStock, sku.ID,
		); err != nil {
			return fmt.Errorf("error updating sku %d stock: %w", sku.ID, err)
		}
	}

	return nil
}

func getShipment(ctx context.Context, q sqlx.QueryerContext, brand, trackingNumber string, forUpdate bool) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE brand_name = $1 AND tracking_number = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}

	var shipment domain.Shipment
	if err := sqlx.GetContext(ctx, q, &shipment, query, brand, trackingNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("shipment %s: %w", trackingNumber, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("error getting shipment: %w", err)
	}
	return &shipment, nil
}

func loadItems(ctx context.Context, q sqlx.QueryerContext, shipmentIDs []int64) (map[int64][]domain.ShipmentItem, error) {
	query := `
		SELECT si.id, si.shipment_id, si.sku_id, s.sku, si.quantity
		FROM shipment_items si
		JOIN skus s ON s.id = si.sku_id
		WHERE si.shipment_id = ANY($1)
		ORDER BY si.id
	`

	var items []domain.ShipmentItem
	if err := sqlx.SelectContext(ctx, q, &items, query, pq.Array(shipmentIDs)); err != nil {
		return nil, fmt.Errorf("error loading shipment items: %w", err)
	}

	byShipment := make(map[int64][]domain.ShipmentItem, len(shipmentIDs))
	for _, item := range items {
		byShipment[item.ShipmentID] = append(byShipment[item.ShipmentID], item)
	}
	return byShipment, nil
}
