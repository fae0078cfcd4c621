package planning

import "github.com/andresuchdata/fbaplan/backend-go/internal/domain"

const (
	urgentCoverDays  = 7
	warningCoverDays = 35
)

// IsForecastable reports whether a SKU takes part in forecasting at all.
func IsForecastable(sku domain.SKU) bool {
	return !sku.IsDiscontinued
}

// ClassifyAlert maps the stock position of a SKU to an alert level.
//
// Rules are evaluated in order:
//  1. no sales: sufficient
//  2. on-hand cover <= 7 days and nothing in transit: urgent
//  3. on-hand cover <= 35 days and nothing in transit: warning
//  4. on-hand plus in-transit cover > 35 days: sufficient
//  5. otherwise: warning
//
// Any in-transit quantity rules out urgent.
func ClassifyAlert(sku domain.SKU) domain.AlertLevel {
	if sku.DailySales <= 0 {
		return domain.AlertSufficient
	}

	// cover <= N days is compared as stock <= N × sales to avoid dividing.
	sales := decimalOf(sku.DailySales)
	onHand := decimalInt(sku.FBAStock)

	if sku.InTransitStock == 0 {
		if onHand.LessThanOrEqual(sales.Mul(decimalInt(urgentCoverDays))) {
			return domain.AlertUrgent
		}
		if onHand.LessThanOrEqual(sales.Mul(decimalInt(warningCoverDays))) {
			return domain.AlertWarning
		}
	}

	total := onHand.Add(decimalInt(sku.InTransitStock))
	if total.GreaterThan(sales.Mul(decimalInt(warningCoverDays))) {
		return domain.AlertSufficient
	}

	return domain.AlertWarning
}
