package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/fbaplan/backend-go/internal/planning"
	"github.com/gin-gonic/gin"
)

type PlanningHandler struct {
	service PlanningService
	loc     *time.Location
}

func NewPlanningHandler(service PlanningService, loc *time.Location) *PlanningHandler {
	return &PlanningHandler{service: service, loc: loc}
}

func (h *PlanningHandler) GetForecast(c *gin.Context) {
	brand, ok := brandParam(c)
	if !ok {
		return
	}
	day, ok := today(c, h.loc)
	if !ok {
		return
	}

	overview, err := h.service.Overview(c.Request.Context(), brand, day)
	if err != nil {
		writeError(c, "failed to build forecast", err)
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetStockingPlan serves ?month=YYYY-MM, defaulting to next month.
func (h *PlanningHandler) GetStockingPlan(c *gin.Context) {
	brand, ok := brandParam(c)
	if !ok {
		return
	}
	day, ok := today(c, h.loc)
	if !ok {
		return
	}

	year, month := day.Year(), day.Month()
	if value := strings.TrimSpace(c.Query("month")); value != "" {
		var err error
		year, month, err = planning.ParseMonth(value)
		if err != nil {
			badRequest(c, "month must be formatted as YYYY-MM")
			return
		}
	} else {
		next := day.AddDate(0, 1, 1-day.Day())
		year, month = next.Year(), next.Month()
	}

	plan, err := h.service.StockingPlan(c.Request.Context(), brand, year, month, day)
	if err != nil {
		writeError(c, "failed to build stocking plan", err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanningHandler) ListPromotions(c *gin.Context) {
	brand, ok := brandParam(c)
	if !ok {
		return
	}

	promos, err := h.service.Promotions(c.Request.Context(), brand)
	if err != nil {
		writeError(c, "failed to list promotions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"promotions": promos})
}

func (h *PlanningHandler) GetPromotionPlan(c *gin.Context) {
	brand, ok := brandParam(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid promotion id")
		return
	}
	day, ok := today(c, h.loc)
	if !ok {
		return
	}

	plan, err := h.service.PromotionPlan(c.Request.Context(), brand, id, day)
	if err != nil {
		writeError(c, "failed to build promotion plan", err)
		return
	}

	c.JSON(http.StatusOK, plan)
}
