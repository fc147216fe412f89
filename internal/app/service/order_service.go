package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/jrbgold/jrb-backend/internal/app/model"
	"github.com/jrbgold/jrb-backend/internal/app/repository"
	"github.com/jrbgold/jrb-backend/internal/events"
	"github.com/jrbgold/jrb-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound          = errors.New("order not found")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrInvalidShippingAddress = errors.New("invalid shipping address")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrOrderNotCancellable    = errors.New("order can no longer be cancelled")
)

const (
	deliveryDays = 7
	day          = 24 * time.Hour

	storeLocation        = "JRB Gold Store"
	distributionLocation = "Thiruvannamalai Distribution Center"
	deliveryHubLocation  = "Local Delivery Hub"
)

var pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// CheckoutInput 주문 생성 요청
type CheckoutInput struct {
	Shipping      model.ShippingAddress
	PaymentMethod model.PaymentMethod
}

type OrderService interface {
	Checkout(ctx context.Context, userID uint, input CheckoutInput) (*model.Order, error)
	GetUserOrders(userID uint, status model.OrderStatus) ([]model.Order, error)
	GetOrderByID(userID uint, orderID string) (*model.Order, error)
	TrackOrder(userID uint, trackingNumber string) (*model.OrderTracking, error)
	CancelOrder(ctx context.Context, userID uint, orderID string) (*model.Order, error)
}

type orderService struct {
	db         *gorm.DB
	orderRepo  repository.OrderRepository
	cartRepo   repository.CartRepository
	rates      RateSnapshotSource
	publisher  events.Publisher
	storeState string
	now        func() time.Time

	stampMu   sync.Mutex
	lastStamp int64
}

// OrderServiceOption 주문 서비스 설정 함수
type OrderServiceOption func(*orderService)

// WithOrderClock 현재 시각 함수 지정 (테스트용)
func WithOrderClock(now func() time.Time) OrderServiceOption {
	return func(s *orderService) { s.now = now }
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	rates RateSnapshotSource,
	publisher events.Publisher,
	storeState string,
	opts ...OrderServiceOption,
) OrderService {
	s := &orderService{
		db:         db,
		orderRepo:  orderRepo,
		cartRepo:   cartRepo,
		rates:      rates,
		publisher:  publisher,
		storeState: storeState,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateShippingAddress 필수 항목과 6자리 우편번호 확인
func ValidateShippingAddress(addr model.ShippingAddress) error {
	required := []struct{ field, value string }{
		{"full_name", addr.FullName},
		{"email", addr.Email},
		{"phone", addr.Phone},
		{"address", addr.Address},
		{"city", addr.City},
		{"state", addr.State},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidShippingAddress, r.field)
		}
	}
	if _, err := mail.ParseAddress(addr.Email); err != nil {
		return fmt.Errorf("%w: email is invalid", ErrInvalidShippingAddress)
	}
	if !pincodePattern.MatchString(strings.TrimSpace(addr.Pincode)) {
		return fmt.Errorf("%w: pincode must be 6 digits", ErrInvalidShippingAddress)
	}
	return nil
}

// nextStamp 주문번호용 밀리초 스탬프. 같은 밀리초에 들어온 주문은 다음 값으로 밀어낸다
func (s *orderService) nextStamp(orders repository.OrderRepository, now time.Time) (int64, error) {
	s.stampMu.Lock()
	defer s.stampMu.Unlock()

	stamp := now.UnixMilli()
	if stamp <= s.lastStamp {
		stamp = s.lastStamp + 1
	}
	for {
		taken, err := stampTaken(orders, stamp)
		if err != nil {
			return 0, err
		}
		if !taken {
			break
		}
		stamp++
	}
	s.lastStamp = stamp
	return stamp, nil
}

func stampTaken(orders repository.OrderRepository, stamp int64) (bool, error) {
	if _, err := orders.FindByID(fmt.Sprintf("JRB%d", stamp)); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if _, err := orders.FindByTrackingNumber(fmt.Sprintf("TRK%d", stamp)); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return false, nil
}

func validPaymentMethod(m model.PaymentMethod) bool {
	switch m {
	case model.PaymentCard, model.PaymentUPI, model.PaymentNetBanking, model.PaymentCOD:
		return true
	}
	return false
}

// DeliveryStatus 주문 후 경과일로 배송 상태 산출. 취소된 주문은 그대로 취소
func DeliveryStatus(order *model.Order, now time.Time) model.OrderStatus {
	if order.Status == model.OrderStatusCancelled {
		return model.OrderStatusCancelled
	}
	days := daysSince(order.CreatedAt, now)
	switch {
	case days >= 7:
		return model.OrderStatusDelivered
	case days >= 3:
		return model.OrderStatusShipped
	case days >= 1:
		return model.OrderStatusConfirmed
	default:
		return model.OrderStatusProcessing
	}
}

func daysSince(t, now time.Time) int {
	d := now.Sub(t)
	if d < 0 {
		return 0
	}
	return int(d / day)
}

func (s *orderService) Checkout(ctx context.Context, userID uint, input CheckoutInput) (*model.Order, error) {
	logger.Info("Creating order from cart", map[string]interface{}{
		"user_id":        userID,
		"payment_method": input.PaymentMethod,
	})

	if err := ValidateShippingAddress(input.Shipping); err != nil {
		logger.Warn("Checkout rejected: invalid shipping address", map[string]interface{}{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, err
	}
	if !validPaymentMethod(input.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	cartItems, err := s.cartRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch cart items", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	if len(cartItems) == 0 {
		logger.Warn("Cannot create order: cart is empty", map[string]interface{}{
			"user_id": userID,
		})
		return nil, ErrEmptyCart
	}

	isInterState := IsInterState(s.storeState, input.Shipping.State)
	summary, err := SummarizeCart(cartItems, s.rates.Snapshot(), isInterState)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &model.Order{
		UserID:            userID,
		Status:            model.OrderStatusConfirmed,
		PaymentMethod:     input.PaymentMethod,
		PaymentStatus:     model.PaymentStatusPaid,
		Shipping:          input.Shipping,
		Subtotal:          summary.Subtotal,
		MakingCharges:     summary.MakingCharges,
		IsInterState:      isInterState,
		CGST:              summary.Tax.CGST,
		SGST:              summary.Tax.SGST,
		IGST:              summary.Tax.IGST,
		TotalGST:          summary.Tax.TotalGST,
		Cess:              summary.Tax.Cess,
		TotalTax:          summary.Tax.TotalTax,
		GrandTotal:        summary.Tax.GrandTotal,
		EstimatedDelivery: now.Add(deliveryDays * day),
		CreatedAt:         now,
	}
	for _, line := range summary.Lines {
		order.Items = append(order.Items, model.OrderItem{
			ProductID:     line.Product.ID,
			ProductName:   line.Product.Name,
			ImageURL:      line.Product.ImageURL,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			MakingCharges: line.MakingCharges,
			LineTotal:     line.LineTotal,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orderRepo.WithTx(tx)
		stamp, err := s.nextStamp(orders, now)
		if err != nil {
			return err
		}
		order.ID = fmt.Sprintf("JRB%d", stamp)
		order.TrackingNumber = fmt.Sprintf("TRK%d", stamp)
		if err := orders.Create(order); err != nil {
			return err
		}
		return s.cartRepo.WithTx(tx).DeleteByUserID(userID)
	})
	if err != nil {
		logger.Error("Failed to create order", err, map[string]interface{}{
			"user_id":  userID,
			"order_id": order.ID,
		})
		return nil, err
	}

	order.DeliveryStatus = DeliveryStatus(order, now)

	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		logger.Warn("Order placed event not published", map[string]interface{}{
			"order_id": order.ID,
			"error":    err.Error(),
		})
	}

	logger.Info("Order created successfully", map[string]interface{}{
		"user_id":         userID,
		"order_id":        order.ID,
		"tracking_number": order.TrackingNumber,
		"grand_total":     order.GrandTotal,
		"is_inter_state":  isInterState,
	})
	return order, nil
}

// GetUserOrders status가 비어 있지 않으면 배송 상태로 거른다
func (s *orderService) GetUserOrders(userID uint, status model.OrderStatus) ([]model.Order, error) {
	orders, err := s.orderRepo.FindByUserID(userID)
	if err != nil {
		logger.Error("Failed to fetch user orders", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	now := s.now()
	filtered := make([]model.Order, 0, len(orders))
	for i := range orders {
		orders[i].DeliveryStatus = DeliveryStatus(&orders[i], now)
		if status != "" && orders[i].DeliveryStatus != status {
			continue
		}
		filtered = append(filtered, orders[i])
	}
	return filtered, nil
}

func (s *orderService) GetOrderByID(userID uint, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		logger.Warn("Order requested by non-owner", map[string]interface{}{
			"user_id":  userID,
			"order_id": orderID,
		})
		return nil, ErrOrderNotFound
	}
	order.DeliveryStatus = DeliveryStatus(order, s.now())
	return order, nil
}

func (s *orderService) TrackOrder(userID uint, trackingNumber string) (*model.OrderTracking, error) {
	order, err := s.orderRepo.FindByTrackingNumber(trackingNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return BuildTracking(order, s.now()), nil
}

// BuildTracking 경과일에 따라 배송 추적 이벤트 목록 생성
func BuildTracking(order *model.Order, now time.Time) *model.OrderTracking {
	status := DeliveryStatus(order, now)
	days := daysSince(order.CreatedAt, now)
	placed := order.CreatedAt

	events := []model.TrackingEvent{{
		Status:      "Order Placed",
		Location:    storeLocation,
		Description: "Your order has been received and is being processed",
		Timestamp:   placed,
		Completed:   true,
	}}
	if days >= 1 {
		events = append(events, model.TrackingEvent{
			Status:      "Order Confirmed",
			Location:    storeLocation,
			Description: "Your order has been confirmed and is being prepared for shipment",
			Timestamp:   placed.Add(1 * day),
			Completed:   true,
		})
	}
	if days >= 3 {
		events = append(events, model.TrackingEvent{
			Status:      "Shipped",
			Location:    distributionLocation,
			Description: "Your order has been shipped and is on its way to you",
			Timestamp:   placed.Add(3 * day),
			Completed:   true,
		})
	}
	if days >= 5 {
		events = append(events, model.TrackingEvent{
			Status:      "In Transit",
			Location:    deliveryHubLocation,
			Description: "Your package is at the local delivery hub and will be delivered soon",
			Timestamp:   placed.Add(5 * day),
			Completed:   true,
		})
	}

	tracking := &model.OrderTracking{
		OrderID:           order.ID,
		TrackingNumber:    order.TrackingNumber,
		Status:            status,
		EstimatedDelivery: order.EstimatedDelivery,
	}

	switch {
	case status == model.OrderStatusCancelled:
	case days >= deliveryDays:
		delivered := placed.Add(deliveryDays * day)
		tracking.DeliveredAt = &delivered
		events = append(events, model.TrackingEvent{
			Status:      "Delivered",
			Location:    order.Shipping.City,
			Description: "Your order has been successfully delivered",
			Timestamp:   delivered,
			Completed:   true,
		})
	default:
		events = append(events, model.TrackingEvent{
			Status:      "Out for Delivery",
			Location:    order.Shipping.City,
			Description: "Your order is out for delivery and will arrive today",
			Timestamp:   order.EstimatedDelivery,
			Completed:   false,
		})
	}

	tracking.Events = events
	return tracking
}

// CancelOrder 배송 상태가 접수/확정일 때만 취소하고 환불 처리한다
func (s *orderService) CancelOrder(ctx context.Context, userID uint, orderID string) (*model.Order, error) {
	order, err := s.GetOrderByID(userID, orderID)
	if err != nil {
		return nil, err
	}

	if order.DeliveryStatus != model.OrderStatusProcessing && order.DeliveryStatus != model.OrderStatusConfirmed {
		logger.Warn("Order cancellation rejected", map[string]interface{}{
			"user_id":         userID,
			"order_id":        orderID,
			"delivery_status": order.DeliveryStatus,
		})
		return nil, ErrOrderNotCancellable
	}

	now := s.now()
	order.Status = model.OrderStatusCancelled
	order.PaymentStatus = model.PaymentStatusRefunded
	order.CancelledAt = &now
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	order.DeliveryStatus = model.OrderStatusCancelled

	if err := s.publisher.PublishOrderCancelled(ctx, order); err != nil {
		logger.Warn("Order cancelled event not published", map[string]interface{}{
			"order_id": order.ID,
			"error":    err.Error(),
		})
	}

	logger.Info("Order cancelled", map[string]interface{}{
		"user_id":  userID,
		"order_id": orderID,
	})
	return order, nil
}
