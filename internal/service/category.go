package service

import (
	"context"
	"fmt"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/repository"
)

type CreateCategoryParams struct {
	Name        string
	Description *string
}

// UpdateCategoryParams is a partial patch; nil fields are left unchanged.
type UpdateCategoryParams struct {
	Name        *string
	Description *string
}

type CategoryService interface {
	Create(ctx context.Context, params CreateCategoryParams) (model.ProductCategory, error)
	Get(ctx context.Context, id int64) (model.ProductCategory, error)
	List(ctx context.Context) ([]model.ProductCategory, error)
	Update(ctx context.Context, id int64, params UpdateCategoryParams) (model.ProductCategory, error)
	// Delete removes a category. Categories that still have products are
	// rejected with a conflict.
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) Create(ctx context.Context, params CreateCategoryParams) (model.ProductCategory, error) {
	category := model.ProductCategory{
		Name:        params.Name,
		Description: params.Description,
		Products:    []model.Product{},
	}
	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		return model.ProductCategory{}, fmt.Errorf("category repository create: %w", err)
	}
	return category, nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (model.ProductCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return model.ProductCategory{}, fmt.Errorf("category repository get by id: %w", err)
	}
	if category == nil {
		return model.ProductCategory{}, apperr.CategoryNotFoundErr
	}
	return *category, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.ProductCategory, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("category repository list: %w", err)
	}
	return categories, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, params UpdateCategoryParams) (model.ProductCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return model.ProductCategory{}, fmt.Errorf("category repository get by id: %w", err)
	}
	if category == nil {
		return model.ProductCategory{}, apperr.CategoryNotFoundErr
	}

	if params.Name != nil {
		category.Name = *params.Name
	}
	if params.Description != nil {
		category.Description = params.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return model.ProductCategory{}, fmt.Errorf("category repository update: %w", err)
	}
	return *category, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	found, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return apperr.CategoryInUseErr
		}
		return fmt.Errorf("category repository delete: %w", err)
	}
	if !found {
		return apperr.CategoryNotFoundErr
	}
	return nil
}
