package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Zheero0/freezye/internal/models"
)

// CreateOrder persists a new order. The id and timestamps are generated by
// the database and written back into the order.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (
			id, full_name, email, phone_number,
			service_id, service_name, quantity, add_on,
			delivery_method, pickup_address, booking_date, booking_time,
			notes, payment_method, payment_intent_id, total_cost, status
		)
		VALUES (
			gen_random_uuid(), $1, $2, $3,
			$4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15, $16
		)
		RETURNING id, created_at, updated_at`

	return s.db.QueryRowxContext(ctx, query,
		order.FullName, order.Email, order.PhoneNumber,
		order.ServiceID, order.ServiceName, order.Quantity, order.AddOn,
		order.DeliveryMethod, order.PickupAddress, order.BookingDate, order.BookingTime,
		order.Notes, order.PaymentMethod, order.PaymentIntentID, order.TotalCost, order.Status,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus updates order status and reports whether a row changed.
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		status, orderID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("order not found: %s", orderID)
	}
	return nil
}

// ListOrders retrieves all orders, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders ORDER BY created_at DESC")
	return orders, err
}

// GetOrdersByEmail retrieves orders placed by one customer, newest first.
func (s *Store) GetOrdersByEmail(ctx context.Context, email string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE email = $1 ORDER BY created_at DESC", email)
	return orders, err
}
