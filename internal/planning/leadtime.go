package planning

import (
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
)

const (
	// PrepDays is the production and preparation time before a promotion shipment.
	PrepDays = 35
	// BufferDays is the safety margin added before a promotion starts.
	BufferDays = 14
)

// TransportLeadDays is the time from dispatch until units are sellable.
func TransportLeadDays(category domain.Category, cfg domain.TransportConfig) int {
	return cfg.ShippingDays(category) + cfg.ShelfDays(category)
}

// PromotionLeadDays is the full preparation window a promotion needs.
func PromotionLeadDays(category domain.Category, cfg domain.TransportConfig) int {
	return PrepDays + TransportLeadDays(category, cfg) + BufferDays
}

// LatestSafeShipDate is the last dispatch date that still lands stock on the
// shelf BufferDays before promoStart.
func LatestSafeShipDate(promoStart time.Time, category domain.Category, cfg domain.TransportConfig) time.Time {
	return AddDays(promoStart, -(TransportLeadDays(category, cfg) + BufferDays))
}
