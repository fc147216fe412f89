package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/jrbgold/jrb-backend/internal/errors"
	"github.com/jrbgold/jrb-backend/internal/middleware"
	"github.com/jrbgold/jrb-backend/internal/pricing"
)

type TaxController struct {
	now func() time.Time
}

func NewTaxController() *TaxController {
	return &TaxController{now: time.Now}
}

type TaxQuoteRequest struct {
	Subtotal      *float64 `json:"subtotal" binding:"required"`
	MakingCharges float64  `json:"making_charges"`
	IsInterState  bool     `json:"is_inter_state"`
}

// GetTaxRates GET /api/v1/tax/rates
func (ctrl *TaxController) GetTaxRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"rates": pricing.CurrentTaxRates(ctrl.now()),
	})
}

// QuoteTax computes GST for an arbitrary subtotal
// POST /api/v1/tax/quote
func (ctrl *TaxController) QuoteTax(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req TaxQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	breakdown, err := pricing.CalculateTax(*req.Subtotal, req.MakingCharges, req.IsInterState)
	if err != nil {
		if errors.Is(err, pricing.ErrInvalidTaxInput) {
			log.Warn("Invalid tax quote input", map[string]interface{}{
				"subtotal":       *req.Subtotal,
				"making_charges": req.MakingCharges,
			})
			apperrors.BadRequest(c, apperrors.TaxInvalidInput, "Amounts must be non-negative and making charges cannot exceed the subtotal")
			return
		}
		apperrors.InternalError(c, "Failed to calculate tax")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tax":           breakdown,
		"tax_lines":     pricing.TaxSummary(breakdown, req.IsInterState),
		"grand_total":   breakdown.GrandTotal,
		"display_total": pricing.FormatINR(breakdown.GrandTotal),
	})
}
