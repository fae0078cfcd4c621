package repository

import (
	"context"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
)

// CatalogRepository supplies the SKU snapshot of a brand.
type CatalogRepository interface {
	ListSKUs(ctx context.Context, brand string) ([]domain.SKU, error)
}

// ShipmentRepository reads shipments and applies the arrival writer contract.
type ShipmentRepository interface {
	// ListShipments returns shipments with their items; an empty status matches all.
	ListShipments(ctx context.Context, brand string, status domain.ShipmentStatus) ([]domain.Shipment, error)
	GetShipment(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error)
	// CreateShipment stores the shipment and moves its quantities into in-transit stock.
	CreateShipment(ctx context.Context, shipment *domain.Shipment) error
	// ConfirmArrival records the arrival and moves quantities from in-transit to FBA stock.
	ConfirmArrival(ctx context.Context, brand, trackingNumber string, actual time.Time, status domain.ShipmentStatus) (*domain.Shipment, error)
	// UndoArrival reverts ConfirmArrival.
	UndoArrival(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error)
}

// TransportConfigRepository supplies per-brand lead times. It returns
// domain.ErrNotFound when the brand has none.
type TransportConfigRepository interface {
	GetTransportConfig(ctx context.Context, brand string) (*domain.TransportConfig, error)
}

// PromotionRepository supplies promotion windows and last year's sales.
type PromotionRepository interface {
	ListPromotions(ctx context.Context, brand string) ([]domain.Promotion, error)
	GetPromotion(ctx context.Context, brand string, id int64) (*domain.Promotion, error)
	ListPromotionSales(ctx context.Context, promotionID int64) ([]domain.PromotionSale, error)
}

// FactoryRepository supplies factory-held stock and actual factory shipments.
type FactoryRepository interface {
	ListFactoryInventory(ctx context.Context, brand, month string) ([]domain.FactoryInventory, error)
	// ListActualShipments returns shipments dated in [from, to).
	ListActualShipments(ctx context.Context, brand string, from, to time.Time) ([]domain.ActualShipment, error)
}
