package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ordersvc/internal/domain"
	"ordersvc/internal/dto"
	apperrors "ordersvc/internal/errors"
	natsinfra "ordersvc/internal/infrastructure/nats"
)

// Subjects served by this controller. order.paid is an inbound notification
// from the payment service; the rest are request/reply commands.
const (
	SubjectCreate               = "order.create"
	SubjectFindAll              = "order.findAll"
	SubjectFindOne              = "order.findOne"
	SubjectChangeStatus         = "order.changeStatus"
	SubjectCreatePaymentSession = "order.createPaymentSession"
	SubjectPaid                 = "order.paid"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type OrderService interface {
	Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderWithItems, error)
	FindAll(ctx context.Context, p dto.OrderPagination) (*dto.PaginatedOrders, error)
	FindOne(ctx context.Context, id string) (*dto.OrderWithItems, error)
	ChangeStatus(ctx context.Context, id, status string) (*dto.OrderResponse, error)
	CreatePaymentSession(ctx context.Context, order *dto.OrderWithItems) (*dto.PaymentSession, error)
	ReconcilePaid(ctx context.Context, event dto.PaidOrderEvent) (*dto.OrderResponse, error)
}

type OrderController struct {
	service OrderService
	logger  *zap.Logger
}

func NewOrderController(service OrderService, logger *zap.Logger) *OrderController {
	return &OrderController{
		service: service,
		logger:  logger,
	}
}

func (c *OrderController) Register(sub *natsinfra.Subscriber) error {
	handlers := map[string]natsinfra.HandlerFunc{
		SubjectCreate:               c.Create,
		SubjectFindAll:              c.FindAll,
		SubjectFindOne:              c.FindOne,
		SubjectChangeStatus:         c.ChangeStatus,
		SubjectCreatePaymentSession: c.CreatePaymentSession,
		SubjectPaid:                 c.Paid,
	}

	for subject, handler := range handlers {
		if err := sub.Handle(subject, handler); err != nil {
			return fmt.Errorf("subscribing to %s: %w", subject, err)
		}
	}

	return nil
}

func (c *OrderController) Create(ctx context.Context, data []byte) (any, error) {
	var req dto.CreateOrderRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, apperrors.NewValidationError("invalid JSON payload")
	}

	if err := validateCreateOrderRequest(req); err != nil {
		return nil, err
	}

	return c.service.Create(ctx, req)
}

func (c *OrderController) FindAll(ctx context.Context, data []byte) (any, error) {
	p := dto.OrderPagination{Page: defaultPage, Limit: defaultLimit}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, apperrors.NewValidationError("invalid JSON payload")
		}
	}
	if p.Page == 0 {
		p.Page = defaultPage
	}
	if p.Limit == 0 {
		p.Limit = defaultLimit
	}

	var details []apperrors.ValidationDetail
	if p.Page < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "page", Message: "page must be a positive integer"})
	}
	if p.Limit < 1 {
		details = append(details, apperrors.ValidationDetail{Field: "limit", Message: "limit must be a positive integer"})
	}
	if p.Status != "" {
		if _, ok := domain.ParseOrderStatus(p.Status); !ok {
			details = append(details, apperrors.ValidationDetail{Field: "status", Message: statusValuesMessage()})
		}
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return c.service.FindAll(ctx, p)
}

func (c *OrderController) FindOne(ctx context.Context, data []byte) (any, error) {
	var req struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, apperrors.NewValidationError("invalid JSON payload")
	}
	if req.ID == "" {
		return nil, apperrors.NewValidationError("validation failed",
			apperrors.ValidationDetail{Field: "id", Message: "id is required"})
	}

	return c.service.FindOne(ctx, req.ID)
}

func (c *OrderController) ChangeStatus(ctx context.Context, data []byte) (any, error) {
	var req dto.ChangeOrderStatusRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, apperrors.NewValidationError("invalid JSON payload")
	}

	var details []apperrors.ValidationDetail
	if req.ID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "id", Message: "id is required"})
	}
	if _, ok := domain.ParseOrderStatus(req.Status); !ok {
		details = append(details, apperrors.ValidationDetail{Field: "status", Message: statusValuesMessage()})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return c.service.ChangeStatus(ctx, req.ID, req.Status)
}

func (c *OrderController) CreatePaymentSession(ctx context.Context, data []byte) (any, error) {
	var order dto.OrderWithItems
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, apperrors.NewValidationError("invalid JSON payload")
	}

	var details []apperrors.ValidationDetail
	if order.ID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "id", Message: "id is required"})
	}
	if len(order.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{Field: "items", Message: "items must not be empty"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return c.service.CreatePaymentSession(ctx, &order)
}

// Paid handles the payment service notification. It replies an ack when the
// sender asked for one, but the notification is valid fire-and-forget too.
func (c *OrderController) Paid(ctx context.Context, data []byte) (any, error) {
	var event dto.PaidOrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, apperrors.NewValidationError("invalid JSON payload")
	}

	var details []apperrors.ValidationDetail
	if event.OrderID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "orderId", Message: "orderId is required"})
	}
	if event.ChargeID == "" {
		details = append(details, apperrors.ValidationDetail{Field: "chargeId", Message: "chargeId is required"})
	}
	if event.ReceiptURL == "" {
		details = append(details, apperrors.ValidationDetail{Field: "receiptUrl", Message: "receiptUrl is required"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return c.service.ReconcilePaid(ctx, event)
}

func validateCreateOrderRequest(req dto.CreateOrderRequest) error {
	var details []apperrors.ValidationDetail

	if len(req.Items) == 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "items",
			Message: "items must not be empty",
		})
	}

	for idx, item := range req.Items {
		if item.ProductID == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].productId", idx),
				Message: "productId is required",
			})
		}
		if item.Quantity < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", idx),
				Message: "quantity must be a positive integer",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func statusValuesMessage() string {
	return fmt.Sprintf("possible status values are %s", strings.Join(domain.OrderStatusList, ", "))
}
