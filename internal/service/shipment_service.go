package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/cache"
	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/andresuchdata/fbaplan/backend-go/internal/planning"
	"github.com/rs/zerolog/log"
)

// CreateShipmentInput describes a shipment entered by hand.
type CreateShipmentInput struct {
	TrackingNumber string
	Category       domain.Category
	ShipDate       *time.Time
	Items          []domain.ShipmentItem
}

// ImportResult reports what an import stored and what it skipped.
type ImportResult struct {
	Created []domain.Shipment `json:"created"`
	Skipped []ImportSkip      `json:"skipped"`
}

type ImportSkip struct {
	TrackingNumber string `json:"tracking_number"`
	Reason         string `json:"reason"`
}

type ShipmentService struct {
	repos    Repositories
	cache    cache.ForecastCache
	defaults domain.TransportConfig
}

func NewShipmentService(repos Repositories, cacheImpl cache.ForecastCache, defaults domain.TransportConfig) *ShipmentService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	return &ShipmentService{repos: repos, cache: cacheImpl, defaults: defaults}
}

func (s *ShipmentService) List(ctx context.Context, brand string, status domain.ShipmentStatus) ([]domain.Shipment, error) {
	return s.repos.Shipments.ListShipments(ctx, brand, status)
}

func (s *ShipmentService) Get(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error) {
	return s.repos.Shipments.GetShipment(ctx, brand, trackingNumber)
}

// Create stores a new in-transit shipment with its projected arrival date.
func (s *ShipmentService) Create(ctx context.Context, brand string, in CreateShipmentInput) (*domain.Shipment, error) {
	if err := validateShipmentInput(in); err != nil {
		return nil, err
	}

	cfg, err := resolveTransportConfig(ctx, s.repos.Transport, brand, s.defaults)
	if err != nil {
		return nil, err
	}

	shipment := &domain.Shipment{
		BrandName:      brand,
		TrackingNumber: strings.TrimSpace(in.TrackingNumber),
		Category:       in.Category,
		Status:         domain.ShipmentShipping,
		Items:          in.Items,
	}
	if in.ShipDate != nil {
		shipDate := planning.Day(*in.ShipDate)
		shipment.ShipDate = &shipDate
	}
	shipment.ExpectedArrivalDate = planning.ExpectedArrival(shipment.ShipDate, shipment.Category, cfg)

	if err := s.repos.Shipments.CreateShipment(ctx, shipment); err != nil {
		return nil, err
	}
	s.invalidate(ctx, brand)

	return shipment, nil
}

func validateShipmentInput(in CreateShipmentInput) error {
	if strings.TrimSpace(in.TrackingNumber) == "" {
		return fmt.Errorf("tracking number is required: %w", domain.ErrInvalidInput)
	}
	if _, ok := domain.ParseCategory(string(in.Category)); !ok {
		return fmt.Errorf("category %q: %w", in.Category, domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("shipment has no items: %w", domain.ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.SKUID == 0 && strings.TrimSpace(item.SKU) == "" {
			return fmt.Errorf("item without sku: %w", domain.ErrInvalidInput)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("sku %s quantity %d: %w", item.SKU, item.Quantity, domain.ErrInvalidInput)
		}
	}
	return nil
}

// Import groups per-SKU rows into shipments by tracking number and stores
// each one. Shipments that cannot be stored are reported and skipped.
func (s *ShipmentService) Import(ctx context.Context, brand string, rows []domain.ShipmentRow) (*ImportResult, error) {
	cfg, err := resolveTransportConfig(ctx, s.repos.Transport, brand, s.defaults)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Created: []domain.Shipment{}, Skipped: []ImportSkip{}}
	for _, shipment := range planning.GroupShipmentRows(rows, cfg) {
		shipment.BrandName = brand
		if err := s.repos.Shipments.CreateShipment(ctx, &shipment); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Err(err).Str("tracking_number", shipment.TrackingNumber).Msg("shipment import: skipping shipment")
			result.Skipped = append(result.Skipped, ImportSkip{
				TrackingNumber: shipment.TrackingNumber,
				Reason:         err.Error(),
			})
			continue
		}
		result.Created = append(result.Created, shipment)
	}

	if len(result.Created) > 0 {
		s.invalidate(ctx, brand)
	}
	return result, nil
}

// ConfirmArrival records the actual arrival day, classifying it against the
// projection, and moves the shipped quantities into FBA stock.
func (s *ShipmentService) ConfirmArrival(ctx context.Context, brand, trackingNumber string, actual time.Time) (*domain.Shipment, error) {
	current, err := s.repos.Shipments.GetShipment(ctx, brand, trackingNumber)
	if err != nil {
		return nil, err
	}
	if current.Status.HasArrived() {
		return nil, fmt.Errorf("shipment %s: %w", trackingNumber, domain.ErrAlreadyArrived)
	}

	actual = planning.Day(actual)
	status := planning.ClassifyArrival(current.ExpectedArrivalDate, actual)

	shipment, err := s.repos.Shipments.ConfirmArrival(ctx, brand, trackingNumber, actual, status)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, brand)

	return shipment, nil
}

// UndoArrival puts an arrived shipment back in transit.
func (s *ShipmentService) UndoArrival(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error) {
	shipment, err := s.repos.Shipments.UndoArrival(ctx, brand, trackingNumber)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, brand)

	return shipment, nil
}

func (s *ShipmentService) invalidate(ctx context.Context, brand string) {
	if err := s.cache.InvalidateBrand(ctx, brand); err != nil {
		log.Warn().Err(err).Str("brand", brand).Msg("shipment: cache invalidation failed")
	}
}
