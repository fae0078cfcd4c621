package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/domain"
	"github.com/andresuchdata/fbaplan/backend-go/internal/planning"
	"github.com/andresuchdata/fbaplan/backend-go/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// PlanningService is the read side served by PlanningHandler.
type PlanningService interface {
	Overview(ctx context.Context, brand string, today time.Time) (*domain.ForecastOverview, error)
	StockingPlan(ctx context.Context, brand string, year int, month time.Month, today time.Time) (*domain.StockingPlan, error)
	Promotions(ctx context.Context, brand string) ([]domain.Promotion, error)
	PromotionPlan(ctx context.Context, brand string, promotionID int64, today time.Time) (*domain.PromotionPlan, error)
}

// ShipmentService is the shipment lifecycle served by ShipmentHandler.
type ShipmentService interface {
	List(ctx context.Context, brand string, status domain.ShipmentStatus) ([]domain.Shipment, error)
	Get(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error)
	Create(ctx context.Context, brand string, in service.CreateShipmentInput) (*domain.Shipment, error)
	Import(ctx context.Context, brand string, rows []domain.ShipmentRow) (*service.ImportResult, error)
	ConfirmArrival(ctx context.Context, brand, trackingNumber string, actual time.Time) (*domain.Shipment, error)
	UndoArrival(ctx context.Context, brand, trackingNumber string) (*domain.Shipment, error)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrAlreadyArrived),
		errors.Is(err, domain.ErrNotArrived):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg(message)
	}
	c.JSON(status, gin.H{"error": message, "details": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

// brandParam returns the trimmed :brand path segment.
func brandParam(c *gin.Context) (string, bool) {
	brand := strings.TrimSpace(c.Param("brand"))
	if brand == "" {
		badRequest(c, "brand is required")
		return "", false
	}
	return brand, true
}

// today resolves the planning day: ?today=YYYY-MM-DD when given, otherwise
// the current day in loc.
func today(c *gin.Context, loc *time.Location) (time.Time, bool) {
	value := strings.TrimSpace(c.Query("today"))
	if value == "" {
		return planning.Today(loc), true
	}
	day, err := planning.ParseDate(value)
	if err != nil {
		badRequest(c, "today must be formatted as YYYY-MM-DD")
		return time.Time{}, false
	}
	return day, true
}
