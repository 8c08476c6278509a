package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/storage/db"
)

type TransactionRepository interface {
	WithDB(db db.DB) TransactionRepository
	CreateHeader(ctx context.Context, tx *model.Transaction) error
	CreateItem(ctx context.Context, item *model.TransactionItem) error
	// GetByID returns the transaction with admin, items and item products
	// attached, or nil if absent.
	GetByID(ctx context.Context, id int64) (*model.Transaction, error)
	// List returns all transactions, newest first, fully materialized.
	List(ctx context.Context) ([]model.Transaction, error)
}

type transactionRepository struct {
	db db.DB
}

func NewTransactionRepository(db db.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r transactionRepository) WithDB(db db.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r transactionRepository) CreateHeader(ctx context.Context, tx *model.Transaction) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO transactions (type, admin_id, notes)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		tx.Type, tx.AdminID, tx.Notes,
	).Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

func (r transactionRepository) CreateItem(ctx context.Context, item *model.TransactionItem) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO transaction_items (transaction_id, product_id, quantity)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		item.TransactionID, item.ProductID, item.Quantity,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("create transaction item: %w", err)
	}
	return nil
}

const transactionSelect = `
	SELECT t.id, t.type, t.admin_id, t.notes, t.created_at,
	       a.id, a.first_name, a.last_name, a.email, a.birth_date, a.gender,
	       a.created_at, a.updated_at
	FROM transactions t
	JOIN admins a ON a.id = t.admin_id`

func (r transactionRepository) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	row := r.db.QueryRow(ctx, transactionSelect+` WHERE t.id = $1`, id)
	tx, err := scanTransaction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	items, err := r.itemsByTransaction(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	tx.Items = items[id]
	if tx.Items == nil {
		tx.Items = []model.TransactionItem{}
	}
	return tx, nil
}

func (r transactionRepository) List(ctx context.Context) ([]model.Transaction, error) {
	rows, err := r.db.Query(ctx, transactionSelect+` ORDER BY t.created_at DESC, t.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	ids := []int64{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Items = []model.TransactionItem{}
		transactions = append(transactions, *tx)
		ids = append(ids, tx.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return transactions, nil
	}

	items, err := r.itemsByTransaction(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		if its, ok := items[transactions[i].ID]; ok {
			transactions[i].Items = its
		}
	}
	return transactions, nil
}

func scanTransaction(row pgx.Row) (*model.Transaction, error) {
	tx := &model.Transaction{Admin: &model.Admin{}}
	err := row.Scan(&tx.ID, &tx.Type, &tx.AdminID, &tx.Notes, &tx.CreatedAt,
		&tx.Admin.ID, &tx.Admin.FirstName, &tx.Admin.LastName, &tx.Admin.Email,
		&tx.Admin.BirthDate, &tx.Admin.Gender, &tx.Admin.CreatedAt, &tx.Admin.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// itemsByTransaction loads items with their products for the given
// transactions, keyed by transaction ID.
func (r transactionRepository) itemsByTransaction(ctx context.Context, txIDs []int64) (map[int64][]model.TransactionItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT i.id, i.transaction_id, i.product_id, i.quantity,
		        p.id, p.name, p.description, p.image_url, p.category_id, p.stock,
		        p.created_at, p.updated_at
		 FROM transaction_items i
		 JOIN products p ON p.id = i.product_id
		 WHERE i.transaction_id = ANY($1)
		 ORDER BY i.id`, txIDs)
	if err != nil {
		return nil, fmt.Errorf("list transaction items: %w", err)
	}
	defer rows.Close()

	items := map[int64][]model.TransactionItem{}
	for rows.Next() {
		item := model.TransactionItem{Product: &model.Product{}}
		p := item.Product
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.ProductID, &item.Quantity,
			&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.CategoryID, &p.Stock,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction item: %w", err)
		}
		items[item.TransactionID] = append(items[item.TransactionID], item)
	}
	return items, rows.Err()
}
