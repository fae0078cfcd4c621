package planning

import (
	"testing"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyAlert(t *testing.T) {
	tests := []struct {
		name      string
		sales     float64
		fba       int
		inTransit int
		want      domain.AlertLevel
	}{
		{"no sales", 0, 0, 0, domain.AlertSufficient},
		{"negative sales", -1, 5, 0, domain.AlertSufficient},
		{"exactly seven days", 10, 70, 0, domain.AlertUrgent},
		{"under seven days", 10, 20, 0, domain.AlertUrgent},
		{"just over seven days", 10, 71, 0, domain.AlertWarning},
		{"exactly thirty five days", 10, 350, 0, domain.AlertWarning},
		{"over thirty five days", 10, 351, 0, domain.AlertSufficient},
		{"in transit blocks urgent", 10, 0, 1, domain.AlertWarning},
		{"in transit covers", 10, 100, 260, domain.AlertSufficient},
		{"in transit total exactly thirty five", 10, 100, 250, domain.AlertWarning},
		{"fractional sales exactly at warning threshold", 0.2, 7, 0, domain.AlertWarning},
		{"fractional sales over warning threshold", 0.2, 8, 0, domain.AlertSufficient},
		{"fractional sales at warning threshold", 0.3, 10, 0, domain.AlertWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sku := domain.SKU{DailySales: tt.sales, FBAStock: tt.fba, InTransitStock: tt.inTransit}
			assert.Equal(t, tt.want, ClassifyAlert(sku))
		})
	}
}

func TestClassifyAlert_Properties(t *testing.T) {
	for sales := 0.5; sales <= 20; sales += 0.5 {
		for fba := 0; fba <= 800; fba += 13 {
			for _, inTransit := range []int{0, 1, 40, 500} {
				sku := domain.SKU{DailySales: sales, FBAStock: fba, InTransitStock: inTransit}
				got := ClassifyAlert(sku)

				if inTransit > 0 {
					assert.NotEqual(t, domain.AlertUrgent, got, "sku %+v", sku)
				}
				if inTransit == 0 && float64(fba) <= 7*sales {
					assert.Equal(t, domain.AlertUrgent, got, "sku %+v", sku)
				}
			}
		}
	}
}

func TestIsForecastable(t *testing.T) {
	assert.True(t, IsForecastable(domain.SKU{}))
	assert.False(t, IsForecastable(domain.SKU{IsDiscontinued: true}))
}
