package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/storage/db"
)

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	Create(ctx context.Context, product *model.Product) error
	// GetByID returns the product with its category attached, or nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id int64) (bool, error)

	// AddStock increments a product's stock. Returns false when the product
	// does not exist.
	AddStock(ctx context.Context, id int64, quantity int) (bool, error)
	// RemoveStock decrements a product's stock with a guard against going
	// negative, in a single conditional statement. Returns false when the
	// product is missing or has insufficient stock; callers distinguish the
	// two with GetByID inside the same transaction.
	RemoveStock(ctx context.Context, id int64, quantity int) (bool, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) Create(ctx context.Context, product *model.Product) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO products (name, description, image_url, category_id, stock)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		product.Name, product.Description, product.ImageURL, product.CategoryID, product.Stock,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

const productSelect = `
	SELECT p.id, p.name, p.description, p.image_url, p.category_id, p.stock,
	       p.created_at, p.updated_at,
	       c.id, c.name, c.description, c.created_at, c.updated_at
	FROM products p
	JOIN product_categories c ON c.id = p.category_id`

func (r productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	row := r.db.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id)
	p, err := scanProductWithCategory(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r productRepository) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, productSelect+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProductWithCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func scanProductWithCategory(row pgx.Row) (*model.Product, error) {
	p := &model.Product{Category: &model.ProductCategory{}}
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.CategoryID,
		&p.Stock, &p.CreatedAt, &p.UpdatedAt,
		&p.Category.ID, &p.Category.Name, &p.Category.Description,
		&p.Category.CreatedAt, &p.Category.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r productRepository) Update(ctx context.Context, product *model.Product) error {
	err := r.db.QueryRow(ctx,
		`UPDATE products
		 SET name = $2, description = $3, image_url = $4, category_id = $5,
		     stock = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		product.ID, product.Name, product.Description, product.ImageURL,
		product.CategoryID, product.Stock,
	).Scan(&product.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

func (r productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r productRepository) AddStock(ctx context.Context, id int64, quantity int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		id, quantity)
	if err != nil {
		return false, fmt.Errorf("add stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r productRepository) RemoveStock(ctx context.Context, id int64, quantity int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = now()
		 WHERE id = $1 AND stock >= $2`,
		id, quantity)
	if err != nil {
		return false, fmt.Errorf("remove stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
