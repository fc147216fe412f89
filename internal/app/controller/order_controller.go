package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/app/service"
	apperrors "github.com/jrbgold/jrb-backend/internal/errors"
	"github.com/jrbgold/jrb-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type CheckoutRequest struct {
	ShippingAddress model.ShippingAddress `json:"shipping_address" binding:"required"`
	PaymentMethod   model.PaymentMethod   `json:"payment_method" binding:"required"`
}

var orderStatusFilters = map[model.OrderStatus]bool{
	model.OrderStatusProcessing: true,
	model.OrderStatusConfirmed:  true,
	model.OrderStatusShipped:    true,
	model.OrderStatusDelivered:  true,
	model.OrderStatusCancelled:  true,
}

func respondOrderError(c *gin.Context, err error, action string, fields map[string]interface{}) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		apperrors.NotFound(c, apperrors.OrderNotFound, "Order not found")
	case errors.Is(err, service.ErrOrderNotCancellable):
		apperrors.Conflict(c, apperrors.OrderNotCancellable, "Order can no longer be cancelled")
	case errors.Is(err, service.ErrEmptyCart):
		apperrors.BadRequest(c, apperrors.CartEmpty, "Cart is empty")
	case errors.Is(err, service.ErrInvalidShippingAddress):
		apperrors.BadRequest(c, apperrors.OrderInvalidAddress, err.Error())
	case errors.Is(err, service.ErrInvalidPaymentMethod):
		apperrors.BadRequest(c, apperrors.OrderInvalidPayment, "Payment method must be card, upi, netbanking or cod")
	default:
		middleware.GetLoggerFromContext(c).Error("Failed to "+action, err, fields)
		apperrors.InternalError(c, "Failed to "+action)
	}
}

// Checkout places an order from the user's cart
// POST /api/v1/orders
func (ctrl *OrderController) Checkout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid checkout request", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	order, err := ctrl.orderService.Checkout(c.Request.Context(), userID, service.CheckoutInput{
		Shipping:      req.ShippingAddress,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondOrderError(c, err, "place order", map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	log.Info("Order placed", map[string]interface{}{
		"user_id":     userID,
		"order_id":    order.ID,
		"grand_total": order.GrandTotal,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetOrders GET /api/v1/orders?status=
func (ctrl *OrderController) GetOrders(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	status := model.OrderStatus(c.Query("status"))
	if status != "" && !orderStatusFilters[status] {
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Unknown order status")
		return
	}

	orders, err := ctrl.orderService.GetUserOrders(userID, status)
	if err != nil {
		respondOrderError(c, err, "fetch orders", map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrderByID GET /api/v1/orders/:id
func (ctrl *OrderController) GetOrderByID(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orderID := c.Param("id")

	order, err := ctrl.orderService.GetOrderByID(userID, orderID)
	if err != nil {
		respondOrderError(c, err, "fetch order", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"order": order,
	})
}

// TrackOrder GET /api/v1/orders/track/:tracking_number
func (ctrl *OrderController) TrackOrder(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	trackingNumber := c.Param("tracking_number")

	tracking, err := ctrl.orderService.TrackOrder(userID, trackingNumber)
	if err != nil {
		respondOrderError(c, err, "track order", map[string]interface{}{
			"user_id":         userID,
			"tracking_number": trackingNumber,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tracking": tracking,
	})
}

// CancelOrder POST /api/v1/orders/:id/cancel
func (ctrl *OrderController) CancelOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	orderID := c.Param("id")

	order, err := ctrl.orderService.CancelOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		respondOrderError(c, err, "cancel order", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return
	}

	log.Info("Order cancelled", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Order cancelled",
		"order":   order,
	})
}
