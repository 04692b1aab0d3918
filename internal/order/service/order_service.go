package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"ordersvc/internal/domain"
	"ordersvc/internal/dto"
	"ordersvc/internal/errors"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	CountByStatus(ctx context.Context, status *domain.OrderStatus) (int, error)
	FindPage(ctx context.Context, status *domain.OrderStatus, offset, limit int) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	RecordPayment(ctx context.Context, id, chargeID, receiptURL string, paidAt time.Time) error
}

type CatalogClient interface {
	ValidateProducts(ctx context.Context, ids []string) ([]domain.Product, error)
}

type PaymentClient interface {
	CreateSession(ctx context.Context, req dto.PaymentSessionRequest) (*dto.PaymentSession, error)
}

// OrderService orchestrates the order lifecycle: creation against the
// catalog snapshot, queries, status transitions and payment reconciliation.
// It holds no state of its own; concurrent invocations are independent.
type OrderService struct {
	repo     OrderRepository
	catalog  CatalogClient
	payment  PaymentClient
	currency string
	logger   *zap.Logger
}

func NewOrderService(
	repo OrderRepository,
	catalog CatalogClient,
	payment PaymentClient,
	currency string,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		repo:     repo,
		catalog:  catalog,
		payment:  payment,
		currency: currency,
		logger:   logger,
	}
}

// Create validates every referenced product against the catalog, computes
// totals from the catalog prices and persists the order atomically. Totals
// are never taken from client input.
func (s *OrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (*dto.OrderWithItems, error) {
	ids := distinctProductIDs(req.Items)

	products, err := s.catalog.ValidateProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	totalAmount := decimal.Zero
	totalItems := 0
	items := make([]domain.OrderItem, len(req.Items))
	for i, line := range req.Items {
		product, ok := byID[line.ProductID]
		if !ok {
			return nil, errors.NewValidationError(
				fmt.Sprintf("product %s is not in the catalog", line.ProductID),
				errors.ValidationDetail{Field: fmt.Sprintf("items[%d].productId", i), Message: "unknown product"},
			)
		}

		items[i] = domain.OrderItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		}
		totalAmount = totalAmount.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		totalItems += line.Quantity
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:          uuid.NewString(),
		TotalAmount: totalAmount,
		TotalItems:  totalItems,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Items:       items,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("orderId", order.ID),
		zap.String("totalAmount", totalAmount.String()),
		zap.Int("totalItems", totalItems))

	return dto.NewOrderWithItems(order, byID), nil
}

// FindAll is a pure read. A page beyond the last one yields an empty data
// set, not an error.
func (s *OrderService) FindAll(ctx context.Context, p dto.OrderPagination) (*dto.PaginatedOrders, error) {
	var statusFilter *domain.OrderStatus
	if p.Status != "" {
		status, ok := domain.ParseOrderStatus(p.Status)
		if !ok {
			return nil, errors.NewValidationError(fmt.Sprintf("invalid status %s", p.Status))
		}
		statusFilter = &status
	}

	totalRecords, err := s.repo.CountByStatus(ctx, statusFilter)
	if err != nil {
		return nil, err
	}

	lastPage := (totalRecords + p.Limit - 1) / p.Limit

	orders, err := s.repo.FindPage(ctx, statusFilter, (p.Page-1)*p.Limit, p.Limit)
	if err != nil {
		return nil, err
	}

	data := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		data[i] = dto.NewOrderResponse(&orders[i])
	}

	return &dto.PaginatedOrders{
		Data: data,
		Pagination: dto.Pagination{
			Page:         p.Page,
			Limit:        p.Limit,
			TotalRecords: totalRecords,
			LastPage:     lastPage,
		},
	}, nil
}

// FindOne re-resolves display names on every read, so a catalog outage also
// breaks reads of stored orders. That trade keeps names out of this store.
func (s *OrderService) FindOne(ctx context.Context, id string) (*dto.OrderWithItems, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(order.Items))
	for i, item := range order.Items {
		ids[i] = item.ProductID
	}

	products, err := s.catalog.ValidateProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return dto.NewOrderWithItems(order, byID), nil
}

// ChangeStatus enforces the lifecycle transition table. Repeating the current
// status is a no-op success, which keeps retried commands harmless.
func (s *OrderService) ChangeStatus(ctx context.Context, id, statusValue string) (*dto.OrderResponse, error) {
	next, ok := domain.ParseOrderStatus(statusValue)
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid status %s", statusValue))
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == next {
		response := dto.NewOrderResponse(order)
		return &response, nil
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, errors.NewTransitionError(
			fmt.Sprintf("cannot transition order from %s to %s", order.Status, next))
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	s.logger.Info("order status changed",
		zap.String("orderId", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)))

	order.Status = next
	order.UpdatedAt = time.Now().UTC()
	response := dto.NewOrderResponse(order)
	return &response, nil
}

// CreatePaymentSession opens a session with the payment gateway for an
// order-with-items response, passing the denormalized names along.
func (s *OrderService) CreatePaymentSession(ctx context.Context, order *dto.OrderWithItems) (*dto.PaymentSession, error) {
	items := make([]dto.PaymentSessionItem, len(order.Items))
	for i, item := range order.Items {
		items[i] = dto.PaymentSessionItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		}
	}

	return s.payment.CreateSession(ctx, dto.PaymentSessionRequest{
		OrderID:  order.ID,
		Currency: s.currency,
		Items:    items,
	})
}

// ReconcilePaid applies a paid notification. The payment service delivers
// at least once, so a replay for an already paid order with the same charge
// id acknowledges without touching the store.
func (s *OrderService) ReconcilePaid(ctx context.Context, event dto.PaidOrderEvent) (*dto.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, event.OrderID)
	if err != nil {
		return nil, err
	}

	if order.Paid {
		if order.ChargeID != nil && *order.ChargeID == event.ChargeID {
			s.logger.Info("paid notification replayed",
				zap.String("orderId", event.OrderID),
				zap.String("chargeId", event.ChargeID))
			response := dto.NewOrderResponse(order)
			return &response, nil
		}
		return nil, errors.NewValidationError(
			fmt.Sprintf("order %s is already paid with a different charge", event.OrderID))
	}

	paidAt := time.Now().UTC()
	if err := s.repo.RecordPayment(ctx, event.OrderID, event.ChargeID, event.ReceiptURL, paidAt); err != nil {
		return nil, err
	}

	s.logger.Info("order paid",
		zap.String("orderId", event.OrderID),
		zap.String("chargeId", event.ChargeID))

	order.Status = domain.OrderStatusPaid
	order.Paid = true
	order.PaidAt = &paidAt
	order.ChargeID = &event.ChargeID
	order.UpdatedAt = paidAt
	response := dto.NewOrderResponse(order)
	return &response, nil
}

func distinctProductIDs(items []dto.CreateOrderItem) []string {
	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
