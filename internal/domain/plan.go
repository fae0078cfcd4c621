package domain

// StockoutEventType distinguishes the entries of a depletion timeline.
type StockoutEventType string

const (
	EventArrival  StockoutEventType = "arrival"
	EventStockout StockoutEventType = "stockout"
)

// StockoutEvent is one entry of a depletion timeline.
type StockoutEvent struct {
	Type            StockoutEventType `json:"type"`
	Date            Date              `json:"date"`
	Quantity        int               `json:"quantity,omitempty"`
	TrackingNumbers []string          `json:"tracking_numbers,omitempty"`
}

// StockoutForecast is the result of a depletion simulation.
// FinalStockoutDate is nil when stock lasts through the simulated horizon.
type StockoutForecast struct {
	Events            []StockoutEvent `json:"events"`
	FinalStockoutDate *Date           `json:"final_stockout_date"`
}

// SKUForecast combines the alert level and stockout forecast of one SKU.
type SKUForecast struct {
	SKUID            int64            `json:"sku_id"`
	SKU              string           `json:"sku"`
	ProductName      string           `json:"product_name"`
	Category         Category         `json:"category"`
	DailySales       float64          `json:"daily_sales"`
	FBAStock         int              `json:"fba_stock"`
	InTransitStock   int              `json:"in_transit_stock"`
	DaysOfStock      *float64         `json:"days_of_stock"`
	TotalDaysOfStock *float64         `json:"total_days_of_stock"`
	Alert            AlertLevel       `json:"alert"`
	Forecast         StockoutForecast `json:"forecast"`
}

// ForecastOverview is the replenishment dashboard of a brand for one day.
type ForecastOverview struct {
	BrandName string             `json:"brand_name"`
	Today     Date               `json:"today"`
	Counts    map[AlertLevel]int `json:"counts"`
	Items     []SKUForecast      `json:"items"`
}

// StockingSuggestion is the advisory factory order for one SKU and month.
type StockingSuggestion struct {
	SKUID              int64  `json:"sku_id"`
	SKU                string `json:"sku"`
	MonthsFromNow      int    `json:"months_from_now"`
	TargetStock        int    `json:"target_stock"`
	StockCounted       int    `json:"stock_counted"`
	SuggestedOrder     int    `json:"suggested_order"`
	ActualShipped      int    `json:"actual_shipped"`
	Difference         int    `json:"difference"`
	IsAdditionalNeeded bool   `json:"is_additional_needed"`
	IsExcess           bool   `json:"is_excess"`
}

// StockingPlan lists the stocking suggestions of a brand for a target month.
type StockingPlan struct {
	BrandName     string               `json:"brand_name"`
	Month         string               `json:"month"`
	MonthsFromNow int                  `json:"months_from_now"`
	Items         []StockingSuggestion `json:"items"`
}

// PromotionRequirement is the surge replenishment one SKU needs for a promotion.
type PromotionRequirement struct {
	SKUID             int64    `json:"sku_id"`
	SKU               string   `json:"sku"`
	Category          Category `json:"category"`
	LastYearSales     int      `json:"last_year_sales"`
	PromoDailyAverage float64  `json:"promo_daily_average"`
	ExtraDemand       int      `json:"extra_demand"`
	DaysToPromoStart  int      `json:"days_to_promo_start"`
	StockAtPromoStart int      `json:"stock_at_promo_start"`
	NeedToShip        int      `json:"need_to_ship"`
	LastShipDate      Date     `json:"last_ship_date"`
	PrepDeadline      Date     `json:"prep_deadline"`
}

// PromotionPlan is the surge plan of one promotion.
type PromotionPlan struct {
	Promotion Promotion              `json:"promotion"`
	Items     []PromotionRequirement `json:"items"`
}
