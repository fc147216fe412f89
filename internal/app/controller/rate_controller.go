package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jrbgold/jrb-backend/internal/app/service"
	apperrors "github.com/jrbgold/jrb-backend/internal/errors"
	"github.com/jrbgold/jrb-backend/internal/middleware"
	"github.com/jrbgold/jrb-backend/internal/rates"
)

type RateController struct {
	rateService service.MetalRateService
}

func NewRateController(rateService service.MetalRateService) *RateController {
	return &RateController{
		rateService: rateService,
	}
}

// GetRates returns the provider status with per-tier day-over-day change
// GET /api/v1/rates
func (ctrl *RateController) GetRates(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	overview, err := ctrl.rateService.GetCurrentRates()
	if err != nil {
		log.Error("Failed to fetch current rates", err)
		apperrors.InternalError(c, "Failed to fetch current rates")
		return
	}

	c.JSON(http.StatusOK, overview)
}

// GetHistory GET /api/v1/rates/history/:metal/:tier?period=1m
func (ctrl *RateController) GetHistory(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	metal, tier, period := c.Param("metal"), c.Param("tier"), c.Query("period")
	history, err := ctrl.rateService.GetHistory(metal, tier, period)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMetalTier):
			apperrors.BadRequest(c, apperrors.RateInvalidMetal, "Unknown metal or tier")
		case errors.Is(err, service.ErrInvalidPeriod):
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "period must be one of 1w, 1m, 3m, 1y, all")
		default:
			log.Error("Failed to fetch rate history", err, map[string]interface{}{
				"metal":  metal,
				"tier":   tier,
				"period": period,
			})
			apperrors.InternalError(c, "Failed to fetch rate history")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metal":   metal,
		"tier":    tier,
		"history": history,
		"count":   len(history),
	})
}

// RefreshRates starts a refresh cycle in the background (Admin only)
// POST /api/v1/rates/refresh
func (ctrl *RateController) RefreshRates(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	if err := ctrl.rateService.RefreshRates(c.Request.Context()); err != nil {
		if errors.Is(err, rates.ErrRefreshInProgress) {
			apperrors.Conflict(c, apperrors.RateRefreshInProgress, "A rate refresh is already in progress")
			return
		}
		log.Error("Failed to start rate refresh", err)
		apperrors.InternalError(c, "Failed to start rate refresh")
		return
	}

	log.Info("Rate refresh started")
	c.JSON(http.StatusAccepted, gin.H{
		"message": "Rate refresh started",
	})
}
