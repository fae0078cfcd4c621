package planning

import (
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
)

// PromotionWindow returns the length in days of last year's window and this
// year's projected window. ok is false when the promotion lacks the dates
// needed to plan it.
func PromotionWindow(promo domain.Promotion) (lastYearDays, thisYearDays int, ok bool) {
	if promo.LastYearStartDate == nil || promo.LastYearEndDate == nil || promo.ThisYearStartDate == nil {
		return 0, 0, false
	}

	lastYearDays = DaysBetween(*promo.LastYearStartDate, *promo.LastYearEndDate) + 1
	if lastYearDays <= 0 {
		return 0, 0, false
	}

	thisYearDays = lastYearDays
	if promo.ThisYearEndDate != nil {
		if days := DaysBetween(*promo.ThisYearStartDate, *promo.ThisYearEndDate) + 1; days > 0 {
			thisYearDays = days
		}
	}

	return lastYearDays, thisYearDays, true
}

// PlanPromotion projects the extra demand of a promotion for every active SKU
// with sales history and derives how much must still be shipped and by when.
// The result is empty when the promotion cannot be planned.
func PlanPromotion(
	promo domain.Promotion,
	skus []domain.SKU,
	sales []domain.PromotionSale,
	cfg domain.TransportConfig,
	today time.Time,
) []domain.PromotionRequirement {
	requirements := []domain.PromotionRequirement{}

	lastYearDays, thisYearDays, ok := PromotionWindow(promo)
	if !ok {
		return requirements
	}

	salesBySKU := make(map[int64]int, len(sales))
	for _, s := range sales {
		salesBySKU[s.SKUID] += s.LastYearSales
	}

	start := Day(*promo.ThisYearStartDate)
	daysToStart := DaysBetween(today, start)

	for _, sku := range skus {
		if !IsForecastable(sku) {
			continue
		}
		lastYearSales, ok := salesBySKU[sku.ID]
		if !ok {
			continue
		}

		req := domain.PromotionRequirement{
			SKUID:            sku.ID,
			SKU:              sku.SKU,
			Category:         sku.Category,
			LastYearSales:    lastYearSales,
			DaysToPromoStart: daysToStart,
			LastShipDate:     domain.NewDate(LatestSafeShipDate(start, sku.Category, cfg)),
			PrepDeadline:     domain.NewDate(AddDays(start, -PromotionLeadDays(sku.Category, cfg))),
		}

		lastDays := decimalInt(lastYearDays)
		thisDays := decimalInt(thisYearDays)
		req.PromoDailyAverage = decimalInt(lastYearSales).DivRound(lastDays, 2).InexactFloat64()

		// (sales/lastDays - daily) × thisDays, kept as one fraction so the
		// ceiling is exact.
		uplift := decimalInt(lastYearSales).Mul(thisDays).
			Sub(decimalOf(sku.DailySales).Mul(thisDays).Mul(lastDays))
		req.ExtraDemand = maxInt(0, ceilDiv(uplift, lastDays))

		consumed := ceilUnits(maxFloat(0, sku.DailySales), maxInt(0, daysToStart))
		req.StockAtPromoStart = maxInt(0, sku.FBAStock+sku.InTransitStock-consumed)
		req.NeedToShip = maxInt(0, req.ExtraDemand-req.StockAtPromoStart)

		requirements = append(requirements, req)
	}

	return requirements
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
