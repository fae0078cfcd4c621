package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/cache"
	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/andresuchdata/fbaplan/backend-go/internal/planning"
	"github.com/andresuchdata/fbaplan/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Repositories bundles the readers and writers the services depend on.
type Repositories struct {
	Catalog    repository.CatalogRepository
	Shipments  repository.ShipmentRepository
	Transport  repository.TransportConfigRepository
	Promotions repository.PromotionRepository
	Factory    repository.FactoryRepository
}

type ReplenishmentService struct {
	repos    Repositories
	cache    cache.ForecastCache
	defaults domain.TransportConfig
}

func NewReplenishmentService(repos Repositories, cacheImpl cache.ForecastCache, defaults domain.TransportConfig) *ReplenishmentService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopForecastCache()
	}
	return &ReplenishmentService{repos: repos, cache: cacheImpl, defaults: defaults}
}

// Overview forecasts every active SKU of a brand, most urgent first.
func (s *ReplenishmentService) Overview(ctx context.Context, brand string, today time.Time) (*domain.ForecastOverview, error) {
	today = planning.Day(today)

	if overview, ok, err := s.cache.GetOverview(ctx, brand, today); err == nil && ok {
		return overview, nil
	} else if err != nil {
		log.Warn().Err(err).Str("brand", brand).Msg("forecast: cache get overview failed")
	}

	var (
		skus      []domain.SKU
		shipments []domain.Shipment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		skus, err = s.repos.Catalog.ListSKUs(gctx, brand)
		return err
	})
	g.Go(func() error {
		var err error
		shipments, err = s.repos.Shipments.ListShipments(gctx, brand, domain.ShipmentShipping)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pending := planning.PendingArrivals(shipments)
	overview := &domain.ForecastOverview{
		BrandName: brand,
		Today:     domain.NewDate(today),
		Counts: map[domain.AlertLevel]int{
			domain.AlertUrgent:     0,
			domain.AlertWarning:    0,
			domain.AlertSufficient: 0,
		},
		Items: []domain.SKUForecast{},
	}

	for _, sku := range skus {
		if !planning.IsForecastable(sku) {
			continue
		}
		item := planning.ForecastSKU(sku, pending[sku.ID], today)
		overview.Counts[item.Alert]++
		overview.Items = append(overview.Items, item)
	}
	sortForecasts(overview.Items)

	if err := s.cache.SetOverview(ctx, overview); err != nil {
		log.Warn().Err(err).Str("brand", brand).Msg("forecast: cache set overview failed")
	}

	return overview, nil
}

// sortForecasts orders by alert severity, then earliest stockout; SKUs
// without a stockout go last within their level.
func sortForecasts(items []domain.SKUForecast) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Alert.Rank() != b.Alert.Rank() {
			return a.Alert.Rank() < b.Alert.Rank()
		}
		da, db := a.Forecast.FinalStockoutDate, b.Forecast.FinalStockoutDate
		switch {
		case da != nil && db != nil && !da.Equal(db.Time):
			return da.Before(db.Time)
		case da != nil && db == nil:
			return true
		case da == nil && db != nil:
			return false
		}
		return a.SKU < b.SKU
	})
}

// StockingPlan suggests factory orders of a brand for the given month.
func (s *ReplenishmentService) StockingPlan(ctx context.Context, brand string, year int, month time.Month, today time.Time) (*domain.StockingPlan, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("month %d: %w", month, domain.ErrInvalidInput)
	}

	monthKey := planning.MonthKey(year, month)
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	var (
		skus      []domain.SKU
		inventory []domain.FactoryInventory
		shipped   []domain.ActualShipment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		skus, err = s.repos.Catalog.ListSKUs(gctx, brand)
		return err
	})
	g.Go(func() error {
		var err error
		inventory, err = s.repos.Factory.ListFactoryInventory(gctx, brand, monthKey)
		return err
	})
	g.Go(func() error {
		var err error
		shipped, err = s.repos.Factory.ListActualShipments(gctx, brand, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	factoryStock := make(map[int64]int, len(inventory))
	for _, inv := range inventory {
		factoryStock[inv.SKUID] += inv.Quantity
	}
	shippedQty := make(map[int64]int, len(shipped))
	for _, a := range shipped {
		shippedQty[a.SKUID] += a.Quantity
	}

	monthsFromNow := planning.MonthsFromNow(planning.Day(today), year, month)
	plan := &domain.StockingPlan{
		BrandName:     brand,
		Month:         monthKey,
		MonthsFromNow: monthsFromNow,
		Items:         []domain.StockingSuggestion{},
	}

	for _, sku := range skus {
		if !planning.IsForecastable(sku) {
			continue
		}
		plan.Items = append(plan.Items, planning.RecommendStocking(planning.StockingInput{
			SKU:           sku,
			FactoryStock:  factoryStock[sku.ID],
			ActualShipped: shippedQty[sku.ID],
			MonthsFromNow: monthsFromNow,
		}))
	}

	return plan, nil
}

// PromotionPlan projects the surge a promotion needs per SKU.
// Promotions lists the brand's promotions ordered by this year's start date.
func (s *ReplenishmentService) Promotions(ctx context.Context, brand string) ([]domain.Promotion, error) {
	promos, err := s.repos.Promotions.ListPromotions(ctx, brand)
	if err != nil {
		return nil, err
	}
	if promos == nil {
		promos = []domain.Promotion{}
	}
	return promos, nil
}

func (s *ReplenishmentService) PromotionPlan(ctx context.Context, brand string, promotionID int64, today time.Time) (*domain.PromotionPlan, error) {
	promo, err := s.repos.Promotions.GetPromotion(ctx, brand, promotionID)
	if err != nil {
		return nil, err
	}

	var (
		skus  []domain.SKU
		sales []domain.PromotionSale
		cfg   domain.TransportConfig
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		skus, err = s.repos.Catalog.ListSKUs(gctx, brand)
		return err
	})
	g.Go(func() error {
		var err error
		sales, err = s.repos.Promotions.ListPromotionSales(gctx, promo.ID)
		return err
	})
	g.Go(func() error {
		var err error
		cfg, err = s.TransportConfig(gctx, brand)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.PromotionPlan{
		Promotion: *promo,
		Items:     planning.PlanPromotion(*promo, skus, sales, cfg, planning.Day(today)),
	}, nil
}

// TransportConfig returns the brand's lead times, or the configured
// defaults when the brand has none.
func (s *ReplenishmentService) TransportConfig(ctx context.Context, brand string) (domain.TransportConfig, error) {
	return resolveTransportConfig(ctx, s.repos.Transport, brand, s.defaults)
}

func resolveTransportConfig(
	ctx context.Context,
	repo repository.TransportConfigRepository,
	brand string,
	defaults domain.TransportConfig,
) (domain.TransportConfig, error) {
	cfg, err := repo.GetTransportConfig(ctx, brand)
	if errors.Is(err, domain.ErrNotFound) {
		fallback := defaults
		fallback.BrandName = brand
		return fallback, nil
	}
	if err != nil {
		return domain.TransportConfig{}, err
	}
	return *cfg, nil
}
