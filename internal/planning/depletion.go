package planning

import (
	"sort"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// HorizonDays caps how far the depletion simulation looks ahead.
	HorizonDays = 180
	// MaxEvents caps the length of the reported timeline.
	MaxEvents = 10
)

type arrivalBatch struct {
	offset          int
	quantity        int
	trackingNumbers []string
}

// scheduleArrivals aggregates pending arrivals per day offset from today.
// Arrivals without an expected date are skipped; overdue ones land today.
func scheduleArrivals(arrivals []domain.PendingArrival, today time.Time) []arrivalBatch {
	dated := make([]domain.PendingArrival, 0, len(arrivals))
	for _, a := range arrivals {
		if a.ExpectedDate == nil || a.Quantity <= 0 {
			continue
		}
		dated = append(dated, a)
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].ExpectedDate.Before(*dated[j].ExpectedDate)
	})

	var batches []arrivalBatch
	for _, a := range dated {
		offset := maxInt(0, DaysBetween(today, *a.ExpectedDate))
		if n := len(batches); n > 0 && batches[n-1].offset == offset {
			batches[n-1].quantity += a.Quantity
			batches[n-1].trackingNumbers = append(batches[n-1].trackingNumbers, a.TrackingNumber)
			continue
		}
		batches = append(batches, arrivalBatch{
			offset:          offset,
			quantity:        a.Quantity,
			trackingNumbers: []string{a.TrackingNumber},
		})
	}
	return batches
}

// SimulateStockout walks stock forward one day at a time from today, adding
// scheduled arrivals and subtracting daily sales, and reports when the SKU
// runs out for good.
//
// The stockout date is the first day that starts with no stock. While
// further arrivals are pending a stockout only opens a gap: stock is held at
// zero until the next arrival and the simulation continues. The final
// stockout date is the start of the gap that no pending arrival closes.
func SimulateStockout(sku domain.SKU, arrivals []domain.PendingArrival, today time.Time) domain.StockoutForecast {
	forecast := domain.StockoutForecast{Events: []domain.StockoutEvent{}}
	if sku.DailySales <= 0 {
		return forecast
	}

	today = Day(today)
	batches := scheduleArrivals(arrivals, today)
	sales := decimalOf(sku.DailySales)
	stock := decimalInt(sku.FBAStock)

	record := func(event domain.StockoutEvent) {
		if len(forecast.Events) < MaxEvents {
			forecast.Events = append(forecast.Events, event)
		}
	}

	next := 0
	inGap := false
	var gapStart time.Time

	for offset := 0; offset < HorizonDays; offset++ {
		date := AddDays(today, offset)

		if next < len(batches) && batches[next].offset == offset {
			batch := batches[next]
			next++
			stock = stock.Add(decimalInt(batch.quantity))
			record(domain.StockoutEvent{
				Type:            domain.EventArrival,
				Date:            domain.NewDate(date),
				Quantity:        batch.quantity,
				TrackingNumbers: batch.trackingNumbers,
			})
		}

		if stock.Sign() <= 0 {
			if !inGap {
				inGap = true
				gapStart = date
				record(domain.StockoutEvent{Type: domain.EventStockout, Date: domain.NewDate(date)})
			}
			if next >= len(batches) {
				break
			}
			stock = decimal.Zero
			continue
		}

		inGap = false
		stock = stock.Sub(sales)
	}

	// A gap still open at the horizon is final even if an arrival is
	// scheduled beyond it.
	if inGap {
		final := domain.NewDate(gapStart)
		forecast.FinalStockoutDate = &final
	}

	return forecast
}
