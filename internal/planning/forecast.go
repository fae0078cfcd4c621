package planning

import (
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
)

// ForecastSKU combines the alert level, cover figures and stockout forecast
// of one SKU.
func ForecastSKU(sku domain.SKU, arrivals []domain.PendingArrival, today time.Time) domain.SKUForecast {
	return domain.SKUForecast{
		SKUID:            sku.ID,
		SKU:              sku.SKU,
		ProductName:      sku.ProductName,
		Category:         sku.Category,
		DailySales:       sku.DailySales,
		FBAStock:         sku.FBAStock,
		InTransitStock:   sku.InTransitStock,
		DaysOfStock:      daysOfStock(sku.FBAStock, sku.DailySales),
		TotalDaysOfStock: daysOfStock(sku.FBAStock+sku.InTransitStock, sku.DailySales),
		Alert:            ClassifyAlert(sku),
		Forecast:         SimulateStockout(sku, arrivals, today),
	}
}
