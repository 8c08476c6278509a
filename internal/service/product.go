package service

import (
	"context"
	"fmt"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/repository"
)

type CreateProductParams struct {
	Name        string
	Description *string
	CategoryID  int64
	Stock       int
	// ImageURL is set by the handler when an image file was uploaded.
	ImageURL *string
}

// UpdateProductParams is a partial patch; nil fields are left unchanged.
type UpdateProductParams struct {
	Name        *string
	Description *string
	CategoryID  *int64
	Stock       *int
	ImageURL    *string
}

type ProductService interface {
	Create(ctx context.Context, params CreateProductParams) (model.Product, error)
	Get(ctx context.Context, id int64) (model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

func (s *productService) Create(ctx context.Context, params CreateProductParams) (model.Product, error) {
	product := model.Product{
		Name:        params.Name,
		Description: params.Description,
		ImageURL:    params.ImageURL,
		CategoryID:  params.CategoryID,
		Stock:       params.Stock,
	}
	if err := s.productRepo.Create(ctx, &product); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return model.Product{}, apperr.CategoryNotFoundErr
		}
		return model.Product{}, fmt.Errorf("product repository create: %w", err)
	}

	return s.Get(ctx, product.ID)
}

func (s *productService) Get(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get by id: %w", err)
	}
	if product == nil {
		return model.Product{}, apperr.ProductNotFoundErr
	}
	return *product, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list: %w", err)
	}
	return products, nil
}

func (s *productService) Update(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get by id: %w", err)
	}
	if product == nil {
		return model.Product{}, apperr.ProductNotFoundErr
	}

	if params.Name != nil {
		product.Name = *params.Name
	}
	if params.Description != nil {
		product.Description = params.Description
	}
	if params.CategoryID != nil {
		product.CategoryID = *params.CategoryID
	}
	if params.Stock != nil {
		product.Stock = *params.Stock
	}
	if params.ImageURL != nil {
		product.ImageURL = params.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return model.Product{}, apperr.CategoryNotFoundErr
		}
		return model.Product{}, fmt.Errorf("product repository update: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	found, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return apperr.ProductInUseErr
		}
		return fmt.Errorf("product repository delete: %w", err)
	}
	if !found {
		return apperr.ProductNotFoundErr
	}
	return nil
}
