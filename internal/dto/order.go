package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"ordersvc/internal/domain"
)

type CreateOrderItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []CreateOrderItem `json:"items"`
}

type OrderPagination struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Status string `json:"status,omitempty"`
}

type ChangeOrderStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// PaidOrderEvent is the inbound notification emitted by the payment service
// once a session has been charged.
type PaidOrderEvent struct {
	OrderID    string `json:"orderId"`
	ChargeID   string `json:"chargeId"`
	ReceiptURL string `json:"receiptUrl"`
}

type OrderResponse struct {
	ID          string          `json:"id"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
	Status      string          `json:"status"`
	Paid        bool            `json:"paid"`
	PaidAt      *time.Time      `json:"paidAt"`
	ChargeID    *string         `json:"chargeId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// OrderItemResponse annotates a stored line with the current catalog name.
// The name is joined in per request and never persisted.
type OrderItemResponse struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name,omitempty"`
}

type OrderWithItems struct {
	OrderResponse
	Items []OrderItemResponse `json:"items"`
}

type Pagination struct {
	Page         int `json:"page"`
	Limit        int `json:"limit"`
	TotalRecords int `json:"totalRecords"`
	LastPage     int `json:"lastPage"`
}

type PaginatedOrders struct {
	Data       []OrderResponse `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

func NewOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		TotalAmount: order.TotalAmount,
		TotalItems:  order.TotalItems,
		Status:      string(order.Status),
		Paid:        order.Paid,
		PaidAt:      order.PaidAt,
		ChargeID:    order.ChargeID,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// NewOrderWithItems maps an order and joins display names from the given
// catalog products. Items whose product is no longer listed keep an empty
// name.
func NewOrderWithItems(order *domain.Order, products map[string]domain.Product) *OrderWithItems {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Name:      products[item.ProductID].Name,
		}
	}

	return &OrderWithItems{
		OrderResponse: NewOrderResponse(order),
		Items:         items,
	}
}
