package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/storage/db"
)

type CategoryRepository interface {
	WithDB(db db.DB) CategoryRepository
	Create(ctx context.Context, category *model.ProductCategory) error
	// GetByID returns the category with its products attached, or nil if absent.
	GetByID(ctx context.Context, id int64) (*model.ProductCategory, error)
	// List returns all categories, each with its products attached.
	List(ctx context.Context) ([]model.ProductCategory, error)
	Update(ctx context.Context, category *model.ProductCategory) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type categoryRepository struct {
	db db.DB
}

func NewCategoryRepository(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) WithDB(db db.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r categoryRepository) Create(ctx context.Context, category *model.ProductCategory) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO product_categories (name, description)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		category.Name, category.Description,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r categoryRepository) GetByID(ctx context.Context, id int64) (*model.ProductCategory, error) {
	c := &model.ProductCategory{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, created_at, updated_at
		 FROM product_categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	products, err := r.productsByCategory(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	c.Products = products[id]
	if c.Products == nil {
		c.Products = []model.Product{}
	}
	return c, nil
}

func (r categoryRepository) List(ctx context.Context) ([]model.ProductCategory, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, created_at, updated_at
		 FROM product_categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.ProductCategory{}
	ids := []int64{}
	for rows.Next() {
		var c model.ProductCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Products = []model.Product{}
		categories = append(categories, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return categories, nil
	}

	products, err := r.productsByCategory(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if p, ok := products[categories[i].ID]; ok {
			categories[i].Products = p
		}
	}
	return categories, nil
}

// productsByCategory loads the products of the given categories, keyed by
// category ID.
func (r categoryRepository) productsByCategory(ctx context.Context, categoryIDs []int64) (map[int64][]model.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, image_url, category_id, stock, created_at, updated_at
		 FROM products WHERE category_id = ANY($1) ORDER BY id`, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("list category products: %w", err)
	}
	defer rows.Close()

	products := map[int64][]model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.CategoryID,
			&p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products[p.CategoryID] = append(products[p.CategoryID], p)
	}
	return products, rows.Err()
}

func (r categoryRepository) Update(ctx context.Context, category *model.ProductCategory) error {
	err := r.db.QueryRow(ctx,
		`UPDATE product_categories
		 SET name = $2, description = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		category.ID, category.Name, category.Description,
	).Scan(&category.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r categoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_categories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
