package planning

import (
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
)

// ExpectedArrival projects when a shipment becomes sellable. It returns nil
// while the ship date is unknown.
func ExpectedArrival(shipDate *time.Time, category domain.Category, cfg domain.TransportConfig) *time.Time {
	if shipDate == nil {
		return nil
	}
	expected := AddDays(*shipDate, TransportLeadDays(category, cfg))
	return &expected
}

// ClassifyArrival compares the actual arrival day with the projection.
// Without a projection every arrival counts as on time.
func ClassifyArrival(expected *time.Time, actual time.Time) domain.ShipmentStatus {
	if expected == nil {
		return domain.ShipmentArrived
	}

	switch diff := DaysBetween(*expected, actual); {
	case diff < 0:
		return domain.ShipmentEarly
	case diff > 0:
		return domain.ShipmentDelayed
	default:
		return domain.ShipmentArrived
	}
}

// GroupShipmentRows folds per-SKU import rows into shipments keyed by
// tracking number, keeping first-seen order. A shipment becomes oversized as
// soon as one of its SKUs is and never goes back to standard.
func GroupShipmentRows(rows []domain.ShipmentRow, cfg domain.TransportConfig) []domain.Shipment {
	index := make(map[string]int)
	shipments := []domain.Shipment{}

	for _, row := range rows {
		if row.TrackingNumber == "" || row.Quantity <= 0 {
			continue
		}

		i, ok := index[row.TrackingNumber]
		if !ok {
			i = len(shipments)
			index[row.TrackingNumber] = i
			shipments = append(shipments, domain.Shipment{
				TrackingNumber: row.TrackingNumber,
				Category:       domain.CategoryStandard,
				Status:         domain.ShipmentShipping,
			})
		}

		s := &shipments[i]
		if row.Category == domain.CategoryOversized {
			s.Category = domain.CategoryOversized
		}
		if s.ShipDate == nil && row.ShipDate != nil {
			shipDate := Day(*row.ShipDate)
			s.ShipDate = &shipDate
		}
		s.Items = mergeItem(s.Items, row)
	}

	for i := range shipments {
		shipments[i].ExpectedArrivalDate = ExpectedArrival(shipments[i].ShipDate, shipments[i].Category, cfg)
	}

	return shipments
}

func mergeItem(items []domain.ShipmentItem, row domain.ShipmentRow) []domain.ShipmentItem {
	for i := range items {
		if items[i].SKUID == row.SKUID && items[i].SKU == row.SKU {
			items[i].Quantity += row.Quantity
			return items
		}
	}
	return append(items, domain.ShipmentItem{SKUID: row.SKUID, SKU: row.SKU, Quantity: row.Quantity})
}

// PendingArrivals collects the not-yet-arrived quantities per SKU ID from
// shipments still in transit.
func PendingArrivals(shipments []domain.Shipment) map[int64][]domain.PendingArrival {
	pending := make(map[int64][]domain.PendingArrival)
	for _, s := range shipments {
		if s.Status != domain.ShipmentShipping {
			continue
		}
		for _, item := range s.Items {
			pending[item.SKUID] = append(pending[item.SKUID], domain.PendingArrival{
				Quantity:       item.Quantity,
				ExpectedDate:   s.ExpectedArrivalDate,
				TrackingNumber: s.TrackingNumber,
			})
		}
	}
	return pending
}
