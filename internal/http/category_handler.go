package http

import (
	"net/http"

	"github.com/invenhq/inventory-api/internal/service"
	"github.com/invenhq/inventory-api/pkg/validator"
)

type createCategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description"`
}

type categoryHandler struct {
	categorySvc service.CategoryService
	validator   validator.Validator
}

func newCategoryHandler(categorySvc service.CategoryService, v validator.Validator) *categoryHandler {
	return &categoryHandler{
		categorySvc: categorySvc,
		validator:   v,
	}
}

func (h *categoryHandler) create(w http.ResponseWriter, r *http.Request) error {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	category, err := h.categorySvc.Create(r.Context(), service.CreateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, category)
	return nil
}

func (h *categoryHandler) list(w http.ResponseWriter, r *http.Request) error {
	categories, err := h.categorySvc.List(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, categories)
	return nil
}

func (h *categoryHandler) get(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	category, err := h.categorySvc.Get(r.Context(), id)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, category)
	return nil
}

func (h *categoryHandler) update(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	category, err := h.categorySvc.Update(r.Context(), id, service.UpdateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, category)
	return nil
}

func (h *categoryHandler) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	if err := h.categorySvc.Delete(r.Context(), id); err != nil {
		return err
	}

	writeJSON(w, http.StatusNoContent, nil)
	return nil
}
