// backend-go/internal/domain/models.go
package domain

import (
	"encoding/json"
	"time"
)

// Category is the size class of a SKU. Each class has its own transport lead time.
type Category string

const (
	CategoryStandard  Category = "standard"
	CategoryOversized Category = "oversized"
)

// SKU is a catalog entry of a brand as supplied by catalog management.
type SKU struct {
	ID             int64    `json:"id" db:"id"`
	BrandName      string   `json:"brand_name" db:"brand_name"`
	SKU            string   `json:"sku" db:"sku"`
	ProductName    string   `json:"product_name" db:"product_name"`
	Category       Category `json:"category" db:"category"`
	DailySales     float64  `json:"daily_sales" db:"daily_sales"`
	FBAStock       int      `json:"fba_stock" db:"fba_stock"`
	InTransitStock int      `json:"in_transit_stock" db:"in_transit_stock"`
	IsDiscontinued bool     `json:"is_discontinued" db:"is_discontinued"`
}

// TransportConfig holds the per-category lead times of a brand, in days.
type TransportConfig struct {
	BrandName             string `json:"brand_name" db:"brand_name"`
	StandardShippingDays  int    `json:"standard_shipping_days" db:"standard_shipping_days"`
	StandardShelfDays     int    `json:"standard_shelf_days" db:"standard_shelf_days"`
	OversizedShippingDays int    `json:"oversized_shipping_days" db:"oversized_shipping_days"`
	OversizedShelfDays    int    `json:"oversized_shelf_days" db:"oversized_shelf_days"`
}

// DefaultTransportConfig is used for brands without a stored configuration.
func DefaultTransportConfig() TransportConfig {
	return TransportConfig{
		StandardShippingDays:  25,
		StandardShelfDays:     10,
		OversizedShippingDays: 35,
		OversizedShelfDays:    10,
	}
}

// ShippingDays returns the sea/air transit days for the category.
func (c TransportConfig) ShippingDays(category Category) int {
	if category == CategoryOversized {
		return c.OversizedShippingDays
	}
	return c.StandardShippingDays
}

// ShelfDays returns the receiving/shelving days for the category.
func (c TransportConfig) ShelfDays(category Category) int {
	if category == CategoryOversized {
		return c.OversizedShelfDays
	}
	return c.StandardShelfDays
}

// Shipment is a batch of units sent to the fulfillment warehouse.
type Shipment struct {
	ID                  int64          `json:"id" db:"id"`
	BrandName           string         `json:"brand_name" db:"brand_name"`
	TrackingNumber      string         `json:"tracking_number" db:"tracking_number"`
	Category            Category       `json:"category" db:"category"`
	Status              ShipmentStatus `json:"status" db:"status"`
	ShipDate            *time.Time     `json:"ship_date" db:"ship_date"`
	ExpectedArrivalDate *time.Time     `json:"expected_arrival_date" db:"expected_arrival_date"`
	ActualArrivalDate   *time.Time     `json:"actual_arrival_date" db:"actual_arrival_date"`
	Items               []ShipmentItem `json:"items" db:"-"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`
}

// TotalQuantity sums the units of all items.
func (s Shipment) TotalQuantity() int {
	total := 0
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// MarshalJSON renders the calendar dates as YYYY-MM-DD and adds the status label.
func (s Shipment) MarshalJSON() ([]byte, error) {
	type shipment Shipment
	return json.Marshal(struct {
		shipment
		StatusLabel         string `json:"status_label"`
		ShipDate            *Date  `json:"ship_date"`
		ExpectedArrivalDate *Date  `json:"expected_arrival_date"`
		ActualArrivalDate   *Date  `json:"actual_arrival_date"`
	}{
		shipment:            shipment(s),
		StatusLabel:         s.Status.Label(),
		ShipDate:            NewDatePtr(s.ShipDate),
		ExpectedArrivalDate: NewDatePtr(s.ExpectedArrivalDate),
		ActualArrivalDate:   NewDatePtr(s.ActualArrivalDate),
	})
}

// ShipmentItem is one SKU line of a shipment.
type ShipmentItem struct {
	ID         int64  `json:"id" db:"id"`
	ShipmentID int64  `json:"shipment_id" db:"shipment_id"`
	SKUID      int64  `json:"sku_id" db:"sku_id"`
	SKU        string `json:"sku" db:"sku"`
	Quantity   int    `json:"quantity" db:"quantity"`
}

// ShipmentRow is a flat per-SKU-per-shipment record as produced by a batch import.
type ShipmentRow struct {
	TrackingNumber string
	SKUID          int64
	SKU            string
	Category       Category
	Quantity       int
	ShipDate       *time.Time
}

// Promotion is a recurring sales event with last year's window and this year's projection.
type Promotion struct {
	ID                int64      `json:"id" db:"id"`
	BrandName         string     `json:"brand_name" db:"brand_name"`
	Name              string     `json:"name" db:"name"`
	LastYearStartDate *time.Time `json:"last_year_start_date" db:"last_year_start_date"`
	LastYearEndDate   *time.Time `json:"last_year_end_date" db:"last_year_end_date"`
	ThisYearStartDate *time.Time `json:"this_year_start_date" db:"this_year_start_date"`
	ThisYearEndDate   *time.Time `json:"this_year_end_date" db:"this_year_end_date"`
}

func (p Promotion) MarshalJSON() ([]byte, error) {
	type promotion Promotion
	return json.Marshal(struct {
		promotion
		LastYearStartDate *Date `json:"last_year_start_date"`
		LastYearEndDate   *Date `json:"last_year_end_date"`
		ThisYearStartDate *Date `json:"this_year_start_date"`
		ThisYearEndDate   *Date `json:"this_year_end_date"`
	}{
		promotion:         promotion(p),
		LastYearStartDate: NewDatePtr(p.LastYearStartDate),
		LastYearEndDate:   NewDatePtr(p.LastYearEndDate),
		ThisYearStartDate: NewDatePtr(p.ThisYearStartDate),
		ThisYearEndDate:   NewDatePtr(p.ThisYearEndDate),
	})
}

// PromotionSale is the number of units a SKU sold during last year's promotion window.
type PromotionSale struct {
	PromotionID   int64  `json:"promotion_id" db:"promotion_id"`
	SKUID         int64  `json:"sku_id" db:"sku_id"`
	SKU           string `json:"sku" db:"sku"`
	LastYearSales int    `json:"last_year_sales" db:"last_year_sales"`
}

// FactoryInventory is the factory-held stock of a SKU for a calendar month (YYYY-MM).
type FactoryInventory struct {
	BrandName       string `json:"brand_name" db:"brand_name"`
	SKUID           int64  `json:"sku_id" db:"sku_id"`
	Month           string `json:"month" db:"month"`
	Quantity        int    `json:"quantity" db:"quantity"`
	AdditionalOrder int    `json:"additional_order" db:"additional_order"`
}

// ActualShipment records units of a SKU that really left the factory on a date.
type ActualShipment struct {
	SKUID    int64     `json:"sku_id" db:"sku_id"`
	ShipDate time.Time `json:"ship_date" db:"ship_date"`
	Quantity int       `json:"quantity" db:"quantity"`
}

func (a ActualShipment) MarshalJSON() ([]byte, error) {
	type actualShipment ActualShipment
	return json.Marshal(struct {
		actualShipment
		ShipDate Date `json:"ship_date"`
	}{
		actualShipment: actualShipment(a),
		ShipDate:       NewDate(a.ShipDate),
	})
}

// PendingArrival is a not-yet-arrived quantity of one SKU from one shipment.
type PendingArrival struct {
	Quantity       int
	ExpectedDate   *time.Time
	TrackingNumber string
}
