package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

type PurchaseRepository struct {
	db *sql.DB
}

func NewPurchaseRepository(db *sql.DB) repository.PurchaseRepository {
	return &PurchaseRepository{db: db}
}

func (r *PurchaseRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Purchase, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, user_id, product_id, purchased_at
FROM purchases
WHERE user_id=?
ORDER BY id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query purchases: %w", err)
	}
	defer rows.Close()

	purchases := []domain.Purchase{}
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.ProductID, &p.PurchasedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		p.PurchasedAt = p.PurchasedAt.UTC()
		purchases = append(purchases, p)
	}

	return purchases, rows.Err()
}

func (r *PurchaseRepository) CheckoutCart(ctx context.Context, userID int64, purchasedAt time.Time) ([]domain.Purchase, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() // safe no-op on commit

	items, err := cartItemsInTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, repository.ErrCartEmpty
	}

	purchasedAt = purchasedAt.UTC()
	purchases := make([]domain.Purchase, 0, len(items))
	for _, item := range items {
		res, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE id=? AND user_id=?`, item.ID, userID)
		if err != nil {
			return nil, fmt.Errorf("delete cart item: %w", err)
		}
		aff, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("cart item delete rows affected: %w", err)
		}
		if aff != 1 {
			return nil, fmt.Errorf("cart item %d: %w", item.ID, repository.ErrConflict)
		}

		res, err = tx.ExecContext(ctx, `
INSERT INTO purchases (user_id, product_id, purchased_at)
VALUES (?, ?, ?)`,
			userID,
			item.ProductID,
			purchasedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("insert purchase: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("purchase last insert id: %w", err)
		}
		purchases = append(purchases, domain.Purchase{
			ID:          id,
			UserID:      userID,
			ProductID:   item.ProductID,
			PurchasedAt: purchasedAt,
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout: %w", err)
	}
	return purchases, nil
}

func cartItemsInTx(ctx context.Context, tx *sql.Tx, userID int64) ([]domain.CartItem, error) {
	rows, err := tx.QueryContext(ctx, `
SELECT id, product_id
FROM cart_items
WHERE user_id=?
ORDER BY id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		item := domain.CartItem{UserID: userID}
		if err := rows.Scan(&item.ID, &item.ProductID); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
