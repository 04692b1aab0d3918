package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderStatusList is the set of accepted status values, used in validation
// messages.
var OrderStatusList = []string{
	string(OrderStatusPending),
	string(OrderStatusPaid),
	string(OrderStatusDelivered),
	string(OrderStatusCancelled),
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusPaid, OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// orderStatusTransitions holds the legal edges of the status lifecycle.
// DELIVERED and CANCELLED are terminal.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:      {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID          string
	TotalAmount decimal.Decimal
	TotalItems  int
	Status      OrderStatus
	Paid        bool
	PaidAt      *time.Time
	ChargeID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []OrderItem
	Receipt     *OrderReceipt
}

// OrderItem carries the catalog price captured at creation time. Price is
// never re-read from the catalog once the order is persisted.
type OrderItem struct {
	ID        uint
	OrderID   string
	ProductID string
	Quantity  int
	Price     decimal.Decimal
}

type OrderReceipt struct {
	ID         uint
	OrderID    string
	ReceiptURL string
}
