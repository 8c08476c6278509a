package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/repository"
	"github.com/invenhq/inventory-api/internal/storage/db"
	"github.com/invenhq/inventory-api/pkg/ptr"
)

// setupDB connects to the database named by TEST_DATABASE_URL, applies
// migrations and wipes all tables. Tests are skipped when the variable is
// unset so the suite stays runnable without infrastructure.
func setupDB(t *testing.T) *db.Client {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.Migrate(pool))

	client := db.NewClient(pool)
	_, err = client.Exec(ctx,
		`TRUNCATE transaction_items, transactions, products, product_categories, admins RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	return client
}

func seedAdmin(t *testing.T, client *db.Client) model.Admin {
	t.Helper()

	admin := model.Admin{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		BirthDate:    time.Date(1990, 4, 21, 0, 0, 0, 0, time.UTC),
		Gender:       model.GenderFemale,
		PasswordHash: "x",
	}
	require.NoError(t, repository.NewAdminRepository(client).Create(context.Background(), &admin))
	return admin
}

func seedCategory(t *testing.T, client *db.Client, name string) model.ProductCategory {
	t.Helper()

	category := model.ProductCategory{Name: name}
	require.NoError(t, repository.NewCategoryRepository(client).Create(context.Background(), &category))
	return category
}

func seedProduct(t *testing.T, client *db.Client, categoryID int64, name string, stock int) model.Product {
	t.Helper()

	product := model.Product{Name: name, CategoryID: categoryID, Stock: stock}
	require.NoError(t, repository.NewProductRepository(client).Create(context.Background(), &product))
	return product
}

func TestAdminRepository(t *testing.T) {
	client := setupDB(t)
	ctx := context.Background()
	repo := repository.NewAdminRepository(client)

	t.Run("Should round-trip an admin", func(t *testing.T) {
		admin := seedAdmin(t, client)

		got, err := repo.GetByID(ctx, admin.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, admin.Email, got.Email)
		assert.Equal(t, model.GenderFemale, got.Gender)
	})

	t.Run("Should find an admin by email", func(t *testing.T) {
		got, err := repo.GetByEmail(ctx, "jane@example.com")
		require.NoError(t, err)
		require.NotNil(t, got)

		missing, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Should enforce email uniqueness", func(t *testing.T) {
		dup := model.Admin{
			FirstName: "Other", LastName: "Doe", Email: "jane@example.com",
			BirthDate: time.Now(), Gender: model.GenderMale, PasswordHash: "x",
		}
		err := repo.Create(ctx, &dup)
		require.Error(t, err)
		assert.True(t, repository.IsUniqueViolation(err))
	})
}

func TestCategoryRepository(t *testing.T) {
	client := setupDB(t)
	ctx := context.Background()
	repo := repository.NewCategoryRepository(client)

	t.Run("Should attach products to listed categories", func(t *testing.T) {
		drinks := seedCategory(t, client, "Drinks")
		seedCategory(t, client, "Snacks")
		seedProduct(t, client, drinks.ID, "Cola", 5)
		seedProduct(t, client, drinks.ID, "Water", 3)

		categories, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)

		byName := map[string][]model.Product{}
		for _, c := range categories {
			byName[c.Name] = c.Products
		}
		assert.Len(t, byName["Drinks"], 2)
		assert.Empty(t, byName["Snacks"])
	})

	t.Run("Should refuse to delete a category with products", func(t *testing.T) {
		category := seedCategory(t, client, "Occupied")
		seedProduct(t, client, category.ID, "Thing", 1)

		_, err := repo.Delete(ctx, category.ID)
		require.Error(t, err)
		assert.True(t, repository.IsForeignKeyViolation(err))
	})

	t.Run("Should delete an empty category", func(t *testing.T) {
		category := seedCategory(t, client, "Empty")

		found, err := repo.Delete(ctx, category.ID)
		require.NoError(t, err)
		assert.True(t, found)
	})
}

func TestProductRepositoryStock(t *testing.T) {
	client := setupDB(t)
	ctx := context.Background()
	repo := repository.NewProductRepository(client)

	category := seedCategory(t, client, "Drinks")

	t.Run("Should add and remove stock", func(t *testing.T) {
		product := seedProduct(t, client, category.ID, "Cola", 5)

		found, err := repo.AddStock(ctx, product.ID, 3)
		require.NoError(t, err)
		assert.True(t, found)

		applied, err := repo.RemoveStock(ctx, product.ID, 4)
		require.NoError(t, err)
		assert.True(t, applied)

		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Stock)
	})

	t.Run("Should refuse a removal that exceeds stock", func(t *testing.T) {
		product := seedProduct(t, client, category.ID, "Water", 2)

		applied, err := repo.RemoveStock(ctx, product.ID, 3)
		require.NoError(t, err)
		assert.False(t, applied)

		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Stock)
	})

	t.Run("Should report a missing product", func(t *testing.T) {
		found, err := repo.AddStock(ctx, 9999, 1)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("Should attach the category", func(t *testing.T) {
		product := seedProduct(t, client, category.ID, "Juice", 1)

		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Category)
		assert.Equal(t, "Drinks", got.Category.Name)
	})

	t.Run("Should survive concurrent removals without going negative", func(t *testing.T) {
		product := seedProduct(t, client, category.ID, "Scarce", 10)

		var wg sync.WaitGroup
		applied := make([]bool, 20)
		for i := range applied {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				ok, err := repo.RemoveStock(ctx, product.ID, 1)
				assert.NoError(t, err)
				applied[i] = ok
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, ok := range applied {
			if ok {
				succeeded++
			}
		}
		assert.Equal(t, 10, succeeded)

		got, err := repo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Stock)
	})
}

func TestTransactionRepository(t *testing.T) {
	client := setupDB(t)
	ctx := context.Background()
	repo := repository.NewTransactionRepository(client)

	admin := seedAdmin(t, client)
	category := seedCategory(t, client, "Drinks")
	product := seedProduct(t, client, category.ID, "Cola", 5)

	t.Run("Should materialize header, admin, items and products", func(t *testing.T) {
		header := model.Transaction{
			Type:    model.TransactionStockIn,
			AdminID: admin.ID,
			Notes:   ptr.New("restock"),
		}
		require.NoError(t, repo.CreateHeader(ctx, &header))
		require.NoError(t, repo.CreateItem(ctx, &model.TransactionItem{
			TransactionID: header.ID,
			ProductID:     product.ID,
			Quantity:      3,
		}))

		got, err := repo.GetByID(ctx, header.ID)
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, model.TransactionStockIn, got.Type)
		require.NotNil(t, got.Admin)
		assert.Equal(t, admin.Email, got.Admin.Email)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 3, got.Items[0].Quantity)
		require.NotNil(t, got.Items[0].Product)
		assert.Equal(t, "Cola", got.Items[0].Product.Name)
	})

	t.Run("Should reject an item for a missing product", func(t *testing.T) {
		header := model.Transaction{Type: model.TransactionStockOut, AdminID: admin.ID}
		require.NoError(t, repo.CreateHeader(ctx, &header))

		err := repo.CreateItem(ctx, &model.TransactionItem{
			TransactionID: header.ID,
			ProductID:     9999,
			Quantity:      1,
		})
		require.Error(t, err)
		assert.True(t, repository.IsForeignKeyViolation(err))
	})

	t.Run("Should list newest first", func(t *testing.T) {
		first := model.Transaction{Type: model.TransactionStockIn, AdminID: admin.ID}
		require.NoError(t, repo.CreateHeader(ctx, &first))
		second := model.Transaction{Type: model.TransactionStockOut, AdminID: admin.ID}
		require.NoError(t, repo.CreateHeader(ctx, &second))

		transactions, err := repo.List(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(transactions), 2)
		assert.Equal(t, second.ID, transactions[0].ID)
	})
}

// TestTransactionAtomicity drives the full stock protocol through a real
// database: partial failures roll everything back, and the ledger sum always
// matches the product's stock.
func TestTransactionAtomicity(t *testing.T) {
	client := setupDB(t)
	ctx := context.Background()

	admin := seedAdmin(t, client)
	category := seedCategory(t, client, "Drinks")
	transactionRepo := repository.NewTransactionRepository(client)
	productRepo := repository.NewProductRepository(client)

	t.Run("Should roll back the whole batch when one item fails", func(t *testing.T) {
		rich := seedProduct(t, client, category.ID, "Rich", 100)
		poor := seedProduct(t, client, category.ID, "Poor", 1)

		err := client.WithTx(ctx, func(tx db.DB) error {
			txTransactions := transactionRepo.WithDB(tx)
			txProducts := productRepo.WithDB(tx)

			header := model.Transaction{Type: model.TransactionStockOut, AdminID: admin.ID}
			if err := txTransactions.CreateHeader(ctx, &header); err != nil {
				return err
			}

			if err := txTransactions.CreateItem(ctx, &model.TransactionItem{
				TransactionID: header.ID, ProductID: rich.ID, Quantity: 10,
			}); err != nil {
				return err
			}
			if _, err := txProducts.RemoveStock(ctx, rich.ID, 10); err != nil {
				return err
			}

			applied, err := txProducts.RemoveStock(ctx, poor.ID, 5)
			if err != nil {
				return err
			}
			require.False(t, applied)
			return assert.AnError
		})
		require.Error(t, err)

		gotRich, err := productRepo.GetByID(ctx, rich.ID)
		require.NoError(t, err)
		assert.Equal(t, 100, gotRich.Stock)

		gotPoor, err := productRepo.GetByID(ctx, poor.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, gotPoor.Stock)

		transactions, err := transactionRepo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, transactions)
	})

	t.Run("Should keep the ledger in step with stock", func(t *testing.T) {
		product := seedProduct(t, client, category.ID, "Ledger", 5)

		apply := func(txType model.TransactionType, quantity int) {
			require.NoError(t, client.WithTx(ctx, func(tx db.DB) error {
				txTransactions := transactionRepo.WithDB(tx)
				txProducts := productRepo.WithDB(tx)

				header := model.Transaction{Type: txType, AdminID: admin.ID}
				if err := txTransactions.CreateHeader(ctx, &header); err != nil {
					return err
				}
				if err := txTransactions.CreateItem(ctx, &model.TransactionItem{
					TransactionID: header.ID, ProductID: product.ID, Quantity: quantity,
				}); err != nil {
					return err
				}

				if txType == model.TransactionStockIn {
					_, err := txProducts.AddStock(ctx, product.ID, quantity)
					return err
				}
				applied, err := txProducts.RemoveStock(ctx, product.ID, quantity)
				require.True(t, applied)
				return err
			}))
		}

		apply(model.TransactionStockIn, 3)
		apply(model.TransactionStockOut, 4)

		got, err := productRepo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.Stock)

		var delta int
		transactions, err := transactionRepo.List(ctx)
		require.NoError(t, err)
		for _, tx := range transactions {
			for _, item := range tx.Items {
				if item.ProductID != product.ID {
					continue
				}
				if tx.Type == model.TransactionStockIn {
					delta += item.Quantity
				} else {
					delta -= item.Quantity
				}
			}
		}
		assert.Equal(t, got.Stock-5, delta)
	})
}
