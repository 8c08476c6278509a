package service_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/repository"
	"github.com/invenhq/inventory-api/internal/service"
)

type categoryRepoStub struct {
	repository.CategoryRepository

	getByID func(ctx context.Context, id int64) (*model.ProductCategory, error)
	update  func(ctx context.Context, category *model.ProductCategory) error
	delete  func(ctx context.Context, id int64) (bool, error)
}

func (s *categoryRepoStub) GetByID(ctx context.Context, id int64) (*model.ProductCategory, error) {
	return s.getByID(ctx, id)
}

func (s *categoryRepoStub) Update(ctx context.Context, category *model.ProductCategory) error {
	return s.update(ctx, category)
}

func (s *categoryRepoStub) Delete(ctx context.Context, id int64) (bool, error) {
	return s.delete(ctx, id)
}

func TestCategoryServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Should patch only the provided fields", func(t *testing.T) {
		desc := "old description"
		repo := &categoryRepoStub{
			getByID: func(context.Context, int64) (*model.ProductCategory, error) {
				return &model.ProductCategory{ID: 1, Name: "Drinks", Description: &desc}, nil
			},
			update: func(context.Context, *model.ProductCategory) error { return nil },
		}
		svc := service.NewCategoryService(repo)

		name := "Beverages"
		category, err := svc.Update(ctx, 1, service.UpdateCategoryParams{Name: &name})
		require.NoError(t, err)

		assert.Equal(t, "Beverages", category.Name)
		require.NotNil(t, category.Description)
		assert.Equal(t, "old description", *category.Description)
	})

	t.Run("Should report a missing category", func(t *testing.T) {
		repo := &categoryRepoStub{
			getByID: func(context.Context, int64) (*model.ProductCategory, error) { return nil, nil },
		}
		svc := service.NewCategoryService(repo)

		_, err := svc.Update(ctx, 99, service.UpdateCategoryParams{})
		assert.ErrorIs(t, err, apperr.CategoryNotFoundErr)
	})
}

func TestCategoryServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse to delete a category that still has products", func(t *testing.T) {
		repo := &categoryRepoStub{
			delete: func(context.Context, int64) (bool, error) {
				return false, &pgconn.PgError{Code: "23503"}
			},
		}
		svc := service.NewCategoryService(repo)

		err := svc.Delete(ctx, 1)
		assert.ErrorIs(t, err, apperr.CategoryInUseErr)
	})

	t.Run("Should report a missing category", func(t *testing.T) {
		repo := &categoryRepoStub{
			delete: func(context.Context, int64) (bool, error) { return false, nil },
		}
		svc := service.NewCategoryService(repo)

		err := svc.Delete(ctx, 99)
		assert.ErrorIs(t, err, apperr.CategoryNotFoundErr)
	})
}
