package controller

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/jrbgold/jrb-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTaxControllerTest() *gin.Engine {
	gin.SetMode(gin.TestMode)

	ctrl := NewTaxController()
	ctrl.now = func() time.Time { return time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC) }

	router := gin.New()
	router.GET("/tax/rates", ctrl.GetTaxRates)
	router.POST("/tax/quote", ctrl.QuoteTax)
	return router
}

func TestTaxController_GetTaxRates(t *testing.T) {
	router := setupTaxControllerTest()

	w := performRequest(router, http.MethodGet, "/tax/rates", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	rates := decodeBody(t, w)["rates"].(map[string]interface{})
	assert.Equal(t, 3.0, rates["gst"])
	assert.Equal(t, 18.0, rates["making_charges_tax"])
	assert.Equal(t, 1.5, rates["cgst"])
	assert.Equal(t, 1.5, rates["sgst"])
	assert.Equal(t, 3.0, rates["igst"])
	assert.Equal(t, "2024-07-01", rates["last_updated"])
}

func TestTaxController_QuoteTax(t *testing.T) {
	router := setupTaxControllerTest()

	t.Run("intra-state", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/tax/quote", map[string]interface{}{
			"subtotal":       100000,
			"making_charges": 10000,
		}, "")
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		tax := response["tax"].(map[string]interface{})
		assert.Equal(t, 2250.0, tax["cgst"])
		assert.Equal(t, 2250.0, tax["sgst"])
		assert.Equal(t, 0.0, tax["igst"])
		assert.Equal(t, 4500.0, tax["total_gst"])
		assert.Equal(t, 104500.0, response["grand_total"])
		assert.Equal(t, "₹1,04,500.00", response["display_total"])
		assert.Len(t, response["tax_lines"], 2)
	})

	t.Run("inter-state", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/tax/quote", map[string]interface{}{
			"subtotal":       100000,
			"making_charges": 10000,
			"is_inter_state": true,
		}, "")
		require.Equal(t, http.StatusOK, w.Code)

		response := decodeBody(t, w)
		tax := response["tax"].(map[string]interface{})
		assert.Equal(t, 4500.0, tax["igst"])
		assert.Equal(t, 0.0, tax["cgst"])
		assert.Len(t, response["tax_lines"], 1)
	})

	t.Run("zero subtotal", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/tax/quote", map[string]interface{}{"subtotal": 0}, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0.0, decodeBody(t, w)["grand_total"])
	})
}

func TestTaxController_QuoteTaxErrors(t *testing.T) {
	router := setupTaxControllerTest()

	tests := []struct {
		name    string
		body    map[string]interface{}
		wantErr string
	}{
		{"missing subtotal", map[string]interface{}{"making_charges": 10}, apperrors.ValidationInvalidInput},
		{"negative subtotal", map[string]interface{}{"subtotal": -1}, apperrors.TaxInvalidInput},
		{"making exceeds subtotal", map[string]interface{}{"subtotal": 100, "making_charges": 200}, apperrors.TaxInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/tax/quote", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantErr, errorCode(t, w))
		})
	}
}
