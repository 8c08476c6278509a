package service

import (
	"context"
	"fmt"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/repository"
	"github.com/invenhq/inventory-api/internal/storage/db"
)

type TransactionItemParams struct {
	ProductID int64
	Quantity  int
}

type CreateTransactionParams struct {
	Type  model.TransactionType
	Notes *string
	Items []TransactionItemParams
}

type TransactionService interface {
	// Create applies a batch of stock deltas as a single all-or-nothing unit
	// of work and records the audit trail. On any failure nothing persists.
	Create(ctx context.Context, adminID int64, params CreateTransactionParams) (model.Transaction, error)
	Get(ctx context.Context, id int64) (model.Transaction, error)
	List(ctx context.Context) ([]model.Transaction, error)
}

type transactionService struct {
	db              db.DB
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
}

func NewTransactionService(
	db db.DB,
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) TransactionService {
	return &transactionService{
		db:              db,
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
	}
}

func (s *transactionService) Create(ctx context.Context, adminID int64, params CreateTransactionParams) (model.Transaction, error) {
	if err := params.Type.Validate(); err != nil {
		return model.Transaction{}, apperr.ValidationErr.WrapParent(err)
	}
	if len(params.Items) == 0 {
		return model.Transaction{}, apperr.ValidationErr.WrapParent(fmt.Errorf("items must not be empty"))
	}

	header := model.Transaction{
		Type:    params.Type,
		AdminID: adminID,
		Notes:   params.Notes,
	}

	if err := s.db.WithTx(ctx, func(tx db.DB) error {
		transactionRepo := s.transactionRepo.WithDB(tx)
		productRepo := s.productRepo.WithDB(tx)

		if err := transactionRepo.CreateHeader(ctx, &header); err != nil {
			if repository.IsForeignKeyViolation(err) {
				return apperr.AdminNotFoundErr
			}
			return fmt.Errorf("transaction repository create header: %w", err)
		}

		for _, item := range params.Items {
			if err := transactionRepo.CreateItem(ctx, &model.TransactionItem{
				TransactionID: header.ID,
				ProductID:     item.ProductID,
				Quantity:      item.Quantity,
			}); err != nil {
				if repository.IsForeignKeyViolation(err) {
					return apperr.ProductNotFoundErr
				}
				return fmt.Errorf("transaction repository create item: %w", err)
			}

			if err := s.applyDelta(ctx, productRepo, params.Type, item); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return model.Transaction{}, err
	}

	return s.Get(ctx, header.ID)
}

// applyDelta adjusts one product's stock inside the transaction. stock_out
// uses a single guarded decrement so a concurrent transaction cannot slip
// between validation and deduction; zero affected rows is then diagnosed as
// either a missing product or insufficient stock.
func (s *transactionService) applyDelta(ctx context.Context, productRepo repository.ProductRepository, txType model.TransactionType, item TransactionItemParams) error {
	if txType == model.TransactionStockIn {
		found, err := productRepo.AddStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("product repository add stock: %w", err)
		}
		if !found {
			return apperr.ProductNotFoundErr
		}
		return nil
	}

	applied, err := productRepo.RemoveStock(ctx, item.ProductID, item.Quantity)
	if err != nil {
		return fmt.Errorf("product repository remove stock: %w", err)
	}
	if applied {
		return nil
	}

	product, err := productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return fmt.Errorf("product repository get by id: %w", err)
	}
	if product == nil {
		return apperr.ProductNotFoundErr
	}
	return apperr.NewInsufficientStock(product.Name, product.Stock, item.Quantity)
}

func (s *transactionService) Get(ctx context.Context, id int64) (model.Transaction, error) {
	tx, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction repository get by id: %w", err)
	}
	if tx == nil {
		return model.Transaction{}, apperr.TransactionNotFoundErr
	}
	return *tx, nil
}

func (s *transactionService) List(ctx context.Context) ([]model.Transaction, error) {
	transactions, err := s.transactionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("transaction repository list: %w", err)
	}
	return transactions, nil
}
