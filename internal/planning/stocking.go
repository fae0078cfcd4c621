package planning

import "github.com/andresuchdata/fbaplan/backend-go/internal/domain"

// StockingInput is the stock position of one SKU for a factory order month.
type StockingInput struct {
	SKU           domain.SKU
	FactoryStock  int
	ActualShipped int
	MonthsFromNow int
}

type coverageTier struct {
	days             int
	includeInTransit bool
}

// coverageFor returns the target coverage for months up to two ahead.
// Later months fall back to a flat monthly need.
func coverageFor(monthsFromNow int) (coverageTier, bool) {
	switch {
	case monthsFromNow <= 0:
		return coverageTier{days: 60, includeInTransit: true}, true
	case monthsFromNow == 1:
		return coverageTier{days: 45}, true
	case monthsFromNow == 2:
		return coverageTier{days: 35}, true
	}
	return coverageTier{}, false
}

const monthlyNeedDays = 30

// RecommendStocking suggests a factory order quantity and compares it with
// what actually shipped in the month. The order is advisory only.
func RecommendStocking(in StockingInput) domain.StockingSuggestion {
	suggestion := domain.StockingSuggestion{
		SKUID:         in.SKU.ID,
		SKU:           in.SKU.SKU,
		MonthsFromNow: in.MonthsFromNow,
		ActualShipped: in.ActualShipped,
	}

	if tier, ok := coverageFor(in.MonthsFromNow); ok {
		counted := in.SKU.FBAStock + in.FactoryStock
		if tier.includeInTransit {
			counted += in.SKU.InTransitStock
		}
		suggestion.TargetStock = ceilUnits(in.SKU.DailySales, tier.days)
		suggestion.StockCounted = counted
		suggestion.SuggestedOrder = maxInt(0, suggestion.TargetStock-counted)
	} else {
		suggestion.TargetStock = ceilUnits(in.SKU.DailySales, monthlyNeedDays)
		suggestion.SuggestedOrder = suggestion.TargetStock
	}

	suggestion.Difference = in.ActualShipped - suggestion.SuggestedOrder
	suggestion.IsAdditionalNeeded, suggestion.IsExcess = classifyShipped(suggestion.Difference, suggestion.SuggestedOrder)

	return suggestion
}

// classifyShipped flags differences strictly beyond 20% of the suggestion.
// With a zero suggestion any shipment at all counts as excess.
func classifyShipped(difference, suggested int) (additional, excess bool) {
	// difference < -0.2 × suggested, in integers
	additional = difference*5 < -suggested
	excess = difference*5 > suggested
	return additional, excess
}
