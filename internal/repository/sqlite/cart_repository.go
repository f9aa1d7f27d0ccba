package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

type CartRepository struct {
	db *sql.DB
}

func NewCartRepository(db *sql.DB) repository.CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) Add(ctx context.Context, item *domain.CartItem) (int64, error) {
	item.AddedAt = time.Now().UTC()
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	res, err := r.db.ExecContext(ctx, `
INSERT INTO cart_items (user_id, product_id, quantity, added_at)
VALUES (?, ?, ?, ?)`,
		item.UserID,
		item.ProductID,
		item.Quantity,
		item.AddedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("product %d: %w", item.ProductID, repository.ErrNotFound)
		}
		return 0, fmt.Errorf("insert cart item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("cart item last insert id: %w", err)
	}
	item.ID = id
	return id, nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, product_id, quantity, added_at
FROM cart_items
WHERE user_id=?
ORDER BY id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		item.AddedAt = item.AddedAt.UTC()
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *CartRepository) DeleteForUser(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("cart item delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("cart item %d: %w", id, repository.ErrNotFound)
	}
	return nil
}
