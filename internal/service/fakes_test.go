package service

import (
	"context"
	"errors"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/andresuchdata/fbaplan/backend-go/internal/planning"
)

type fakeCatalog struct {
	skus []domain.SKU
	err  error
}

func (f *fakeCatalog) ListSKUs(ctx context.Context, brand string) ([]domain.SKU, error) {
	return f.skus, f.err
}

type fakeShipments struct {
	shipments map[string]*domain.Shipment
	createErr map[string]error
	confirmed []domain.ShipmentStatus
}

func newFakeShipments(shipments ...domain.Shipment) *fakeShipments {
	f := &fakeShipments{shipments: map[string]*domain.Shipment{}, createErr: map[string]error{}}
	for i := range shipments {
		s := shipments[i]
		f.shipments[s.TrackingNumber] = &s
	}
	return f
}

func (f *fakeShipments) ListShipments(ctx context.Context, brand string, status domain.ShipmentStatus) ([]domain.Shipment, error) {
	var out []domain.Shipment
	for _, s := range f.shipments {
		if status == "" || s.Status == status {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeShipments) GetShipment(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error) {
	s, ok := f.shipments[trackingNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeShipments) CreateShipment(ctx context.Context, shipment *domain.Shipment) error {
	if err := f.createErr[shipment.TrackingNumber]; err != nil {
		return err
	}
	if _, ok := f.shipments[shipment.TrackingNumber]; ok {
		return domain.ErrDuplicate
	}
	shipment.ID = int64(len(f.shipments) + 1)
	stored := *shipment
	f.shipments[shipment.TrackingNumber] = &stored
	return nil
}

func (f *fakeShipments) ConfirmArrival(ctx context.Context, brand, trackingNumber string, actual time.Time, status domain.ShipmentStatus) (*domain.Shipment, error) {
	s, ok := f.shipments[trackingNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	f.confirmed = append(f.confirmed, status)
	s.Status = status
	s.ActualArrivalDate = &actual
	copied := *s
	return &copied, nil
}

func (f *fakeShipments) UndoArrival(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error) {
	s, ok := f.shipments[trackingNumber]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !s.Status.HasArrived() {
		return nil, domain.ErrNotArrived
	}
	s.Status = domain.ShipmentShipping
	s.ActualArrivalDate = nil
	copied := *s
	return &copied, nil
}

type fakeTransport struct {
	cfg *domain.TransportConfig
	err error
}

func (f *fakeTransport) GetTransportConfig(ctx context.Context, brand string) (*domain.TransportConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.cfg == nil {
		return nil, domain.ErrNotFound
	}
	return f.cfg, nil
}

type fakePromotions struct {
	promotions []domain.Promotion
	sales      []domain.PromotionSale
}

func (f *fakePromotions) ListPromotions(ctx context.Context, brand string) ([]domain.Promotion, error) {
	return f.promotions, nil
}

func (f *fakePromotions) GetPromotion(ctx context.Context, brand string, id int64) (*domain.Promotion, error) {
	for _, p := range f.promotions {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakePromotions) ListPromotionSales(ctx context.Context, promotionID int64) ([]domain.PromotionSale, error) {
	var out []domain.PromotionSale
	for _, s := range f.sales {
		if s.PromotionID == promotionID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeFactory struct {
	inventory []domain.FactoryInventory
	shipped   []domain.ActualShipment
	month     string
	from, to  time.Time
}

func (f *fakeFactory) ListFactoryInventory(ctx context.Context, brand, month string) ([]domain.FactoryInventory, error) {
	f.month = month
	return f.inventory, nil
}

func (f *fakeFactory) ListActualShipments(ctx context.Context, brand string, from, to time.Time) ([]domain.ActualShipment, error) {
	f.from, f.to = from, to
	return f.shipped, nil
}

type fakeCache struct {
	stored      map[string]*domain.ForecastOverview
	invalidated []string
	getErr      error
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: map[string]*domain.ForecastOverview{}}
}

func cacheKey(brand string, today time.Time) string {
	return brand + "|" + planning.FormatDate(today)
}

func (c *fakeCache) GetOverview(ctx context.Context, brand string, today time.Time) (*domain.ForecastOverview, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	o, ok := c.stored[cacheKey(brand, today)]
	return o, ok, nil
}

func (c *fakeCache) SetOverview(ctx context.Context, overview *domain.ForecastOverview) error {
	c.stored[cacheKey(overview.BrandName, overview.Today.Time)] = overview
	return nil
}

func (c *fakeCache) InvalidateBrand(ctx context.Context, brand string) error {
	c.invalidated = append(c.invalidated, brand)
	for key := range c.stored {
		delete(c.stored, key)
	}
	return nil
}

var errBoom = errors.New("boom")

func mustDate(value string) time.Time {
	t, err := planning.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return t
}

func datePtr(value string) *time.Time {
	t := mustDate(value)
	return &t
}
