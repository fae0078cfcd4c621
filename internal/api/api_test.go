package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/andresuchdata/fbaplan/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanning struct {
	brand   string
	today   time.Time
	year    int
	month   time.Month
	promoID int64
	err     error
}

func (s *stubPlanning) Overview(ctx context.Context, brand string, today time.Time) (*domain.ForecastOverview, error) {
	s.brand, s.today = brand, today
	if s.err != nil {
		return nil, s.err
	}
	return &domain.ForecastOverview{
		BrandName: brand,
		Today:     domain.NewDate(today),
		Counts:    map[domain.AlertLevel]int{domain.AlertUrgent: 1},
		Items:     []domain.SKUForecast{{SKU: "A-1", Alert: domain.AlertUrgent}},
	}, nil
}

func (s *stubPlanning) StockingPlan(ctx context.Context, brand string, year int, month time.Month, today time.Time) (*domain.StockingPlan, error) {
	s.brand, s.year, s.month, s.today = brand, year, month, today
	if s.err != nil {
		return nil, s.err
	}
	return &domain.StockingPlan{BrandName: brand, Month: fmt.Sprintf("%04d-%02d", year, int(month))}, nil
}

func (s *stubPlanning) Promotions(ctx context.Context, brand string) ([]domain.Promotion, error) {
	s.brand = brand
	if s.err != nil {
		return nil, s.err
	}
	start := time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC)
	return []domain.Promotion{{ID: 7, BrandName: brand, Name: "Black Friday", ThisYearStartDate: &start}}, nil
}

func (s *stubPlanning) PromotionPlan(ctx context.Context, brand string, promotionID int64, today time.Time) (*domain.PromotionPlan, error) {
	s.brand, s.promoID, s.today = brand, promotionID, today
	if s.err != nil {
		return nil, s.err
	}
	return &domain.PromotionPlan{Promotion: domain.Promotion{ID: promotionID}}, nil
}

type stubShipments struct {
	status  domain.ShipmentStatus
	created service.CreateShipmentInput
	rows    []domain.ShipmentRow
	actual  time.Time
	err     error
}

func (s *stubShipments) List(ctx context.Context, brand string, status domain.ShipmentStatus) ([]domain.Shipment, error) {
	s.status = status
	return nil, s.err
}

func (s *stubShipments) Get(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Shipment{BrandName: brand, TrackingNumber: trackingNumber}, nil
}

func (s *stubShipments) Create(ctx context.Context, brand string, in service.CreateShipmentInput) (*domain.Shipment, error) {
	s.created = in
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Shipment{BrandName: brand, TrackingNumber: in.TrackingNumber, Category: in.Category}, nil
}

func (s *stubShipments) Import(ctx context.Context, brand string, rows []domain.ShipmentRow) (*service.ImportResult, error) {
	s.rows = rows
	return &service.ImportResult{Created: []domain.Shipment{}, Skipped: []service.ImportSkip{}}, s.err
}

func (s *stubShipments) ConfirmArrival(ctx context.Context, brand, trackingNumber string, actual time.Time) (*domain.Shipment, error) {
	s.actual = actual
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Shipment{TrackingNumber: trackingNumber, Status: domain.ShipmentArrived}, nil
}

func (s *stubShipments) UndoArrival(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Shipment{TrackingNumber: trackingNumber, Status: domain.ShipmentShipping}, nil
}

func newTestRouter(p *stubPlanning, s *stubShipments) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(&Services{Planning: p, Shipments: s, Location: time.UTC}, nil)
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(t, newTestRouter(nil, nil), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestGetForecast(t *testing.T) {
	p := &stubPlanning{}
	w := do(t, newTestRouter(p, &stubShipments{}), http.MethodGet, "/api/v1/brands/acme/forecast?today=2025-03-10", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "acme", p.brand)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), p.today)

	var body domain.ForecastOverview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-10", body.Today.String())
	assert.Equal(t, 1, body.Counts[domain.AlertUrgent])
}

func TestGetForecast_BadToday(t *testing.T) {
	w := do(t, newTestRouter(&stubPlanning{}, &stubShipments{}), http.MethodGet, "/api/v1/brands/acme/forecast?today=10/03/2025", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetForecast_ServiceError(t *testing.T) {
	p := &stubPlanning{err: fmt.Errorf("db down")}
	w := do(t, newTestRouter(p, &stubShipments{}), http.MethodGet, "/api/v1/brands/acme/forecast", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to build forecast")
}

func TestGetStockingPlan(t *testing.T) {
	p := &stubPlanning{}
	router := newTestRouter(p, &stubShipments{})

	w := do(t, router, http.MethodGet, "/api/v1/brands/acme/stocking?month=2025-06&today=2025-03-10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2025, p.year)
	assert.Equal(t, time.June, p.month)

	w = do(t, router, http.MethodGet, "/api/v1/brands/acme/stocking?today=2025-12-31", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2026, p.year)
	assert.Equal(t, time.January, p.month)

	w = do(t, router, http.MethodGet, "/api/v1/brands/acme/stocking?month=june", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListPromotions(t *testing.T) {
	p := &stubPlanning{}
	router := newTestRouter(p, &stubShipments{})

	w := do(t, router, http.MethodGet, "/api/v1/brands/acme/promotions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "acme", p.brand)

	var body struct {
		Promotions []map[string]any `json:"promotions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Promotions, 1)
	assert.Equal(t, "Black Friday", body.Promotions[0]["name"])
	assert.Equal(t, "2025-11-28", body.Promotions[0]["this_year_start_date"])
	assert.Nil(t, body.Promotions[0]["last_year_start_date"])

	p.err = errors.New("db down")
	w = do(t, router, http.MethodGet, "/api/v1/brands/acme/promotions", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetPromotionPlan(t *testing.T) {
	p := &stubPlanning{}
	router := newTestRouter(p, &stubShipments{})

	w := do(t, router, http.MethodGet, "/api/v1/brands/acme/promotions/7/plan", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), p.promoID)

	w = do(t, router, http.MethodGet, "/api/v1/brands/acme/promotions/abc/plan", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	p.err = fmt.Errorf("promotion 8: %w", domain.ErrNotFound)
	w = do(t, router, http.MethodGet, "/api/v1/brands/acme/promotions/8/plan", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListShipments(t *testing.T) {
	s := &stubShipments{}
	router := newTestRouter(&stubPlanning{}, s)

	w := do(t, router, http.MethodGet, "/api/v1/brands/acme/shipments?status=Shipping", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.ShipmentShipping, s.status)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(t, router, http.MethodGet, "/api/v1/brands/acme/shipments?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateShipment(t *testing.T) {
	s := &stubShipments{}
	router := newTestRouter(&stubPlanning{}, s)

	w := do(t, router, http.MethodPost, "/api/v1/brands/acme/shipments", `{
		"tracking_number": "T1",
		"category": "Oversized",
		"ship_date": "2025-03-01",
		"items": [{"sku": "A-1", "quantity": 30}]
	}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "T1", s.created.TrackingNumber)
	assert.Equal(t, domain.CategoryOversized, s.created.Category)
	require.NotNil(t, s.created.ShipDate)
	assert.Equal(t, "2025-03-01", s.created.ShipDate.Format(domain.DateLayout))
	assert.Equal(t, []domain.ShipmentItem{{SKU: "A-1", Quantity: 30}}, s.created.Items)

	w = do(t, router, http.MethodPost, "/api/v1/brands/acme/shipments", `{"tracking_number": "T1", "ship_date": "March"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.err = fmt.Errorf("shipment T1: %w", domain.ErrDuplicate)
	w = do(t, router, http.MethodPost, "/api/v1/brands/acme/shipments", `{"tracking_number": "T1", "items": [{"sku": "A-1", "quantity": 1}]}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, domain.CategoryStandard, s.created.Category)
}

func TestImportShipments(t *testing.T) {
	s := &stubShipments{}
	router := newTestRouter(&stubPlanning{}, s)

	w := do(t, router, http.MethodPost, "/api/v1/brands/acme/shipments/import", `{"rows": [
		{"tracking_number": " T1 ", "sku": "A-1", "quantity": 3, "ship_date": "2025-03-01"},
		{"tracking_number": "T1", "sku": "A-2", "category": "oversized", "quantity": 2}
	]}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, s.rows, 2)
	assert.Equal(t, "T1", s.rows[0].TrackingNumber)
	assert.Equal(t, domain.CategoryStandard, s.rows[0].Category)
	assert.Equal(t, domain.CategoryOversized, s.rows[1].Category)
	assert.Nil(t, s.rows[1].ShipDate)
	assert.JSONEq(t, `{"created":[],"skipped":[]}`, w.Body.String())
}

func TestConfirmArrival(t *testing.T) {
	s := &stubShipments{}
	router := newTestRouter(&stubPlanning{}, s)

	w := do(t, router, http.MethodPost, "/api/v1/brands/acme/shipments/T1/arrival", `{"actual_arrival_date": "2025-04-07"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2025, 4, 7, 0, 0, 0, 0, time.UTC), s.actual)

	w = do(t, router, http.MethodPost, "/api/v1/brands/acme/shipments/T1/arrival?today=2025-04-09", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC), s.actual)

	s.err = fmt.Errorf("shipment T1: %w", domain.ErrAlreadyArrived)
	w = do(t, router, http.MethodPost, "/api/v1/brands/acme/shipments/T1/arrival", `{}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUndoArrival(t *testing.T) {
	s := &stubShipments{}
	router := newTestRouter(&stubPlanning{}, s)

	w := do(t, router, http.MethodDelete, "/api/v1/brands/acme/shipments/T1/arrival", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"shipping"`)

	s.err = fmt.Errorf("shipment T1: %w", domain.ErrNotArrived)
	w = do(t, router, http.MethodDelete, "/api/v1/brands/acme/shipments/T1/arrival", "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	origins, allowAll := normalizeAllowedOrigins([]string{"https://a.example, https://b.example", " "})
	assert.False(t, allowAll)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, origins)

	_, allowAll = normalizeAllowedOrigins([]string{"*"})
	assert.True(t, allowAll)
}
