package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"ecofinds/internal/domain"
	"ecofinds/internal/repository"
)

const selectProductColumns = `
SELECT id, title, description, category, price, image_url, owner_id, created_at, updated_at
FROM products`

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) repository.ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (int64, error) {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO products (title, description, category, price, image_url, owner_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.Title,
		nullString(product.Description),
		product.Category,
		product.Price.String(),
		product.ImageURL,
		product.OwnerID,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product last insert id: %w", err)
	}
	product.ID = id
	return id, nil
}

func (r *ProductRepository) Get(ctx context.Context, id int64) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, selectProductColumns+`
WHERE id = ?`, id)
	return scanProduct(row)
}

func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var (
		conds []string
		args  []any
	)
	if filter.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Search != "" {
		conds = append(conds, "instr("+foldFunction+"(title), "+foldFunction+"(?)) > 0")
		args = append(args, filter.Search)
	}
	if filter.OwnerID != 0 {
		conds = append(conds, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}

	query := selectProductColumns
	if len(conds) > 0 {
		query += "\nWHERE " + strings.Join(conds, " AND ")
	}
	query += "\nORDER BY id ASC\nLIMIT ? OFFSET ?"

	limit := filter.Limit
	if limit <= 0 {
		limit = -1
	}
	args = append(args, limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE products
SET title=?, description=?, category=?, price=?, image_url=?, updated_at=?
WHERE id=?`,
		product.Title,
		nullString(product.Description),
		product.Category,
		product.Price.String(),
		product.ImageURL,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("product update rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("product %d: %w", product.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE product_id=?`, id); err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("product delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("product %d: %w", id, repository.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit product delete: %w", err)
	}
	return nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		product     domain.Product
		description sql.NullString
	)
	if err := row.Scan(
		&product.ID,
		&product.Title,
		&description,
		&product.Category,
		&product.Price,
		&product.ImageURL,
		&product.OwnerID,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	if description.Valid {
		product.Description = &description.String
	}
	product.CreatedAt = product.CreatedAt.UTC()
	product.UpdatedAt = product.UpdatedAt.UTC()
	return &product, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
