package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ordersvc/internal/domain"
	"ordersvc/internal/errors"
)

type MySQLOrderRepository struct {
	db *sql.DB
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLOrderRepository {
	return &MySQLOrderRepository{db: db}
}

// Create persists the order together with all its items in one transaction.
// A failed insert leaves nothing behind.
func (r *MySQLOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	// MySQL ignores rollback if already committed.
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO Orders (id, totalAmount, totalItems, status, paid, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, orderQuery,
		order.ID, order.TotalAmount, order.TotalItems, string(order.Status),
		order.Paid, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	itemQuery := `INSERT INTO OrderItems (orderId, productId, quantity, price) VALUES (?, ?, ?, ?)`
	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, itemQuery, order.ID, item.ProductID, item.Quantity, item.Price); err != nil {
			return fmt.Errorf("inserting order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order: %w", err)
	}

	return nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, totalAmount, totalItems, status, paid, paidAt, chargeId, createdAt, updatedAt
		FROM Orders
		WHERE id = ?
	`

	var order domain.Order
	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID, &order.TotalAmount, &order.TotalItems, &status,
		&order.Paid, &order.PaidAt, &order.ChargeID, &order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying order by id: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	receipt, err := r.findReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Receipt = receipt

	return &order, nil
}

func (r *MySQLOrderRepository) findItems(ctx context.Context, orderID string) ([]domain.OrderItem, error) {
	query := `SELECT id, orderId, productId, quantity, price FROM OrderItems WHERE orderId = ? ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *MySQLOrderRepository) findReceipt(ctx context.Context, orderID string) (*domain.OrderReceipt, error) {
	query := `SELECT id, orderId, receiptUrl FROM OrderReceipts WHERE orderId = ?`

	var receipt domain.OrderReceipt
	err := r.db.QueryRowContext(ctx, query, orderID).Scan(&receipt.ID, &receipt.OrderID, &receipt.ReceiptURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying order receipt: %w", err)
	}

	return &receipt, nil
}

func (r *MySQLOrderRepository) CountByStatus(ctx context.Context, status *domain.OrderStatus) (int, error) {
	query := `SELECT COUNT(*) FROM Orders`
	args := []any{}
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*status))
	}

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting orders: %w", err)
	}

	return count, nil
}

// FindPage returns one page of orders without their items; the list view
// only shows aggregates. Ordering by creation time keeps pages stable.
func (r *MySQLOrderRepository) FindPage(ctx context.Context, status *domain.OrderStatus, offset, limit int) ([]domain.Order, error) {
	query := `
		SELECT id, totalAmount, totalItems, status, paid, paidAt, chargeId, createdAt, updatedAt
		FROM Orders
	`
	args := []any{}
	if status != nil {
		query += ` WHERE status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY createdAt, id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying orders page: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		var st string
		err := rows.Scan(
			&order.ID, &order.TotalAmount, &order.TotalItems, &st,
			&order.Paid, &order.PaidAt, &order.ChargeID, &order.CreatedAt, &order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		order.Status = domain.OrderStatus(st)
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	query := `UPDATE Orders SET status = ?, updatedAt = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, string(status), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	return nil
}

// RecordPayment marks the order as paid and stores its receipt in one
// transaction. The receipt insert tolerates replays: a second notification
// for the same order leaves the existing receipt untouched.
func (r *MySQLOrderRepository) RecordPayment(ctx context.Context, id, chargeID, receiptURL string, paidAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		UPDATE Orders
		SET status = ?, paid = 1, paidAt = ?, chargeId = ?, updatedAt = ?
		WHERE id = ?
	`
	result, err := tx.ExecContext(ctx, orderQuery, string(domain.OrderStatusPaid), paidAt, chargeID, paidAt, id)
	if err != nil {
		return fmt.Errorf("recording payment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}

	receiptQuery := `
		INSERT INTO OrderReceipts (orderId, receiptUrl)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE receiptUrl = receiptUrl
	`
	if _, err := tx.ExecContext(ctx, receiptQuery, id, receiptURL); err != nil {
		return fmt.Errorf("inserting order receipt: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing payment: %w", err)
	}

	return nil
}
