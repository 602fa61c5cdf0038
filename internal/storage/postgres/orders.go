package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
	"github.com/memoriza/memoriza/internal/domain/repository"
)

const orderColumns = `id, user_id, status, subtotal, shipping_amount, total,
    ship_street, ship_number, ship_complement, ship_district, ship_city, ship_state, ship_zip_code,
    tracking_code, carrier, delivered_at,
    refund_status, refund_reason, refund_requested_at, refund_processed_at,
    preference_id, init_point, payment_id, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.Subtotal, &o.ShippingAmount, &o.Total,
		&o.Shipping.Street, &o.Shipping.Number, &o.Shipping.Complement, &o.Shipping.District,
		&o.Shipping.City, &o.Shipping.State, &o.Shipping.ZipCode,
		&o.TrackingCode, &o.Carrier, &o.DeliveredAt,
		&o.RefundStatus, &o.RefundReason, &o.RefundRequestedAt, &o.RefundProcessedAt,
		&o.PreferenceID, &o.InitPoint, &o.PaymentID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Create persists the order snapshot, its items and the initial history
// entry atomically.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	created := *order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (user_id, status, subtotal, shipping_amount, total,
                ship_street, ship_number, ship_complement, ship_district, ship_city, ship_state, ship_zip_code, refund_status)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
            RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.UserID, order.Status, order.Subtotal, order.ShippingAmount, order.Total,
			order.Shipping.Street, order.Shipping.Number, order.Shipping.Complement, order.Shipping.District,
			order.Shipping.City, order.Shipping.State, order.Shipping.ZipCode, model.RefundStatusNone,
		).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, subtotal)
                            VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
		created.Items = make([]model.OrderItem, len(order.Items))
		for i, item := range order.Items {
			item.OrderID = created.ID
			if err := tx.QueryRow(ctx, insertItem, created.ID, item.ProductID, item.ProductName,
				item.UnitPrice, item.Quantity, item.Subtotal).Scan(&item.ID); err != nil {
				return err
			}
			created.Items[i] = item
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, from_status, to_status, actor, note)
                               VALUES ($1, $2, $3, $4, $5)`
		actor := fmt.Sprintf("user:%d", order.UserID)
		if _, err := tx.Exec(ctx, insertHistory, created.ID, "", order.Status, actor, "order created"); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	created.RefundStatus = model.RefundStatusNone
	return &created, nil
}

func (r *orderRepository) loadItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	const query = `SELECT id, order_id, product_id, product_name, unit_price, quantity, subtotal
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.UnitPrice, &item.Quantity, &item.Subtotal); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) loadHistory(ctx context.Context, orderID int64) ([]model.StatusChange, error) {
	const query = `SELECT id, order_id, from_status, to_status, actor, note, created_at
                   FROM order_status_history WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []model.StatusChange
	for rows.Next() {
		var change model.StatusChange
		if err := rows.Scan(&change.ID, &change.OrderID, &change.From, &change.To,
			&change.Actor, &change.Note, &change.CreatedAt); err != nil {
			return nil, err
		}
		history = append(history, change)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}

func (r *orderRepository) attachDetails(ctx context.Context, order *model.Order) (*model.Order, error) {
	items, err := r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	history, err := r.loadHistory(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	order.History = history
	return order, nil
}

// GetForUser loads the order only when it belongs to the user. Ownership is
// enforced by the query predicate.
func (r *orderRepository) GetForUser(ctx context.Context, userID, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 AND user_id=$2`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		return nil, err
	}
	return r.attachDetails(ctx, order)
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return r.attachDetails(ctx, order)
}

func (r *orderRepository) scanOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.Subtotal, &o.ShippingAmount, &o.Total,
			&o.Shipping.Street, &o.Shipping.Number, &o.Shipping.Complement, &o.Shipping.District,
			&o.Shipping.City, &o.Shipping.State, &o.Shipping.ZipCode,
			&o.TrackingCode, &o.Carrier, &o.DeliveredAt,
			&o.RefundStatus, &o.RefundReason, &o.RefundRequestedAt, &o.RefundProcessedAt,
			&o.PreferenceID, &o.InitPoint, &o.PaymentID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return r.scanOrders(rows)
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += ` WHERE status=$1`
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return r.scanOrders(rows)
}

// UpdateStatus overwrites the status and appends the audit entry in one
// transaction. DeliveredAt is stamped once, on the transition into
// DELIVERED; a self-transition (audit-only update) leaves it untouched.
func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status model.OrderStatus, actor, note string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectCurrent = `SELECT status FROM orders WHERE id=$1 FOR UPDATE`
		var current model.OrderStatus
		if err := tx.QueryRow(ctx, selectCurrent, id).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		update := `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
		if status == model.OrderStatusDelivered && current != model.OrderStatusDelivered {
			update = `UPDATE orders SET status=$1, delivered_at=NOW(), updated_at=NOW() WHERE id=$2`
		}
		if _, err := tx.Exec(ctx, update, status, id); err != nil {
			return err
		}

		const insertHistory = `INSERT INTO order_status_history (order_id, from_status, to_status, actor, note)
                               VALUES ($1, $2, $3, $4, $5)`
		if _, err := tx.Exec(ctx, insertHistory, id, current, status, actor, note); err != nil {
			return err
		}
		return nil
	})
}

func (r *orderRepository) SetTracking(ctx context.Context, id int64, carrier, code string) error {
	const query = `UPDATE orders SET carrier=$1, tracking_code=$2, updated_at=NOW() WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, carrier, code, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SetPreference(ctx context.Context, id int64, preferenceID, initPoint string) error {
	const query = `UPDATE orders SET preference_id=$1, init_point=$2, updated_at=NOW() WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, preferenceID, initPoint, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SetPaymentID(ctx context.Context, id int64, paymentID int64) error {
	const query = `UPDATE orders SET payment_id=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, paymentID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) RequestRefund(ctx context.Context, id int64, reason string, at time.Time) error {
	const query = `UPDATE orders SET refund_status=$1, refund_reason=$2, refund_requested_at=$3, updated_at=NOW() WHERE id=$4`
	tag, err := r.storage.pool.Exec(ctx, query, model.RefundStatusRequested, reason, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ResolveRefund(ctx context.Context, id int64, status model.RefundStatus, at time.Time) error {
	const query = `UPDATE orders SET refund_status=$1, refund_processed_at=$2, updated_at=NOW() WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, status, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// SelectPendingBatch locks and returns PENDING orders created before the
// cutoff, skipping rows held by concurrent workers.
func (r *orderRepository) SelectPendingBatch(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + `
                   FROM orders
                   WHERE status='PENDING' AND created_at < $1
                   ORDER BY created_at
                   LIMIT $2
                   FOR UPDATE SKIP LOCKED`

	var orders []model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, cutoff, limit)
		if err != nil {
			return err
		}
		batch, err := r.scanOrders(rows)
		if err != nil {
			return err
		}
		orders = batch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}
