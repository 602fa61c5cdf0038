package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/memoriza/memoriza/internal/domain/errors"
	"github.com/memoriza/memoriza/internal/domain/model"
)

// --- CartRepository implementation ---

func (r *cartRepository) GetActive(ctx context.Context, userID int64) (*model.Cart, error) {
	const query = `SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id=$1`
	var cart model.Cart
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return &cart, nil
}

func (r *cartRepository) loadItems(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	const query = `SELECT id, cart_id, product_id, product_name, unit_price, quantity, weight_grams
                   FROM cart_items WHERE cart_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CartItem
	for rows.Next() {
		var item model.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.ProductName,
			&item.UnitPrice, &item.Quantity, &item.WeightGrams); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem lazily creates the cart row and upserts the line, incrementing
// quantity when the product is already present.
func (r *cartRepository) AddItem(ctx context.Context, userID int64, item model.CartItem) (*model.Cart, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const upsertCart = `INSERT INTO carts (user_id) VALUES ($1)
                            ON CONFLICT (user_id) DO UPDATE SET updated_at=NOW()
                            RETURNING id`
		var cartID int64
		if err := tx.QueryRow(ctx, upsertCart, userID).Scan(&cartID); err != nil {
			return err
		}

		const upsertItem = `INSERT INTO cart_items (cart_id, product_id, product_name, unit_price, quantity, weight_grams)
                            VALUES ($1, $2, $3, $4, $5, $6)
                            ON CONFLICT (cart_id, product_id) DO UPDATE
                            SET quantity = cart_items.quantity + EXCLUDED.quantity,
                                unit_price = EXCLUDED.unit_price`
		_, err := tx.Exec(ctx, upsertItem, cartID, item.ProductID, item.ProductName,
			item.UnitPrice, item.Quantity, item.WeightGrams)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r.GetActive(ctx, userID)
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, userID, itemID int64, quantity int) error {
	const query = `UPDATE cart_items SET quantity=$1
                   WHERE id=$2 AND cart_id IN (SELECT id FROM carts WHERE user_id=$3)`
	tag, err := r.storage.pool.Exec(ctx, query, quantity, itemID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *cartRepository) RemoveItem(ctx context.Context, userID, itemID int64) error {
	const query = `DELETE FROM cart_items
                   WHERE id=$1 AND cart_id IN (SELECT id FROM carts WHERE user_id=$2)`
	tag, err := r.storage.pool.Exec(ctx, query, itemID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	const query = `DELETE FROM cart_items WHERE cart_id IN (SELECT id FROM carts WHERE user_id=$1)`
	_, err := r.storage.pool.Exec(ctx, query, userID)
	return err
}
