package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/andresuchdata/fbaplan/backend-go/internal/service"
	"github.com/gin-gonic/gin"
)

type ShipmentHandler struct {
	service ShipmentService
	loc     *time.Location
}

func NewShipmentHandler(service ShipmentService, loc *time.Location) *ShipmentHandler {
	return &ShipmentHandler{service: service, loc: loc}
}

type shipmentItemRequest struct {
	SKUID    int64  `json:"sku_id"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type createShipmentRequest struct {
	TrackingNumber string                `json:"tracking_number" binding:"required"`
	Category       string                `json:"category"`
	ShipDate       *domain.Date          `json:"ship_date"`
	Items          []shipmentItemRequest `json:"items" binding:"required"`
}

type shipmentRowRequest struct {
	TrackingNumber string       `json:"tracking_number"`
	SKUID          int64        `json:"sku_id"`
	SKU            string       `json:"sku"`
	Category       string       `json:"category"`
	Quantity       int          `json:"quantity"`
	ShipDate       *domain.Date `json:"ship_date"`
}

type importShipmentsRequest struct {
	Rows []shipmentRowRequest `json:"rows" binding:"required"`
}

type arrivalRequest struct {
	ActualArrivalDate *domain.Date `json:"actual_arrival_date"`
}

func dateTime(d *domain.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

// categoryOf defaults an empty category to standard.
func categoryOf(value string) domain.Category {
	if strings.TrimSpace(value) == "" {
		return domain.CategoryStandard
	}
	if category, ok := domain.ParseCategory(value); ok {
		return category
	}
	return domain.Category(value)
}

func (h *ShipmentHandler) ListShipments(c *gin.Context) {
	brand, ok := brandParam(c)
	if !ok {
		return
	}

	var status domain.ShipmentStatus
	if value := strings.TrimSpace(c.Query("status")); value != "" {
		parsed, ok := domain.ParseShipmentStatus(value)
		if !ok {
			badRequest(c, "invalid shipment status")
			return
		}
		status = parsed
	}

	shipments, err := h.service.List(c.Request.Context(), brand, status)
	if err != nil {
		writeError(c, "failed to fetch shipments", err)
		return
	}
	if shipments == nil {
		shipments = make([]domain.Shipment, 0)
	}

	c.JSON(http.StatusOK, shipments)
}

func (h *ShipmentHandler) GetShipment(c *gin.Context) {
	brand, ok := brandParam(c)
	if !ok {
		return
	}

	shipment, err := h.service.Get(c.Request.Context(), brand, c.Param("tracking"))
	if err != nil {
		writeError(c, "failed to fetch shipment", err)
		return
	}

	c.JSON(http.StatusOK, shipment)
}

func (h *ShipmentHandler) CreateShipment(c *gin.Context) {
	brand, ok := brandParam(c)
	if !ok {
		return
	}

	var req createShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shipment", "details": err.Error()})
		return
	}

	items := make([]domain.ShipmentItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.ShipmentItem{SKUID: item.SKUID, SKU: item.SKU, Quantity: item.Quantity})
	}

	shipment, err := h.service.Create(c.Request.Context(), brand, service.CreateShipmentInput{
		TrackingNumber: req.TrackingNumber,
		Category:       categoryOf(req.Category),
		ShipDate:       dateTime(req.ShipDate),
		Items:          items,
	})
	if err != nil {
		writeError(c, "failed to create shipment", err)
		return
	}

	c.JSON(http.StatusCreated, shipment)
}

func (h *ShipmentHandler) ImportShipments(c *gin.Context) {
	brand, ok := brandParam(c)
	if !ok {
		return
	}

	var req importShipmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid import", "details": err.Error()})
		return
	}

	rows := make([]domain.ShipmentRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		rows = append(rows, domain.ShipmentRow{
			TrackingNumber: strings.TrimSpace(row.TrackingNumber),
			SKUID:          row.SKUID,
			SKU:            strings.TrimSpace(row.SKU),
			Category:       categoryOf(row.Category),
			Quantity:       row.Quantity,
			ShipDate:       dateTime(row.ShipDate),
		})
	}

	result, err := h.service.Import(c.Request.Context(), brand, rows)
	if err != nil {
		writeError(c, "failed to import shipments", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ConfirmArrival records the arrival on actual_arrival_date, or today when
// the body omits it.
func (h *ShipmentHandler) ConfirmArrival(c *gin.Context) {
	brand, ok := brandParam(c)
	if !ok {
		return
	}

	var req arrivalRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid arrival", "details": err.Error()})
			return
		}
	}

	actual := dateTime(req.ActualArrivalDate)
	if actual == nil {
		day, ok := today(c, h.loc)
		if !ok {
			return
		}
		actual = &day
	}

	shipment, err := h.service.ConfirmArrival(c.Request.Context(), brand, c.Param("tracking"), *actual)
	if err != nil {
		writeError(c, "failed to confirm arrival", err)
		return
	}

	c.JSON(http.StatusOK, shipment)
}

func (h *ShipmentHandler) UndoArrival(c *gin.Context) {
	brand, ok := brandParam(c)
	if !ok {
		return
	}

	shipment, err := h.service.UndoArrival(c.Request.Context(), brand, c.Param("tracking"))
	if err != nil {
		writeError(c, "failed to undo arrival", err)
		return
	}

	c.JSON(http.StatusOK, shipment)
}
