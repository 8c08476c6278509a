package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/service"
	"github.com/invenhq/inventory-api/internal/storage/upload"
	"github.com/invenhq/inventory-api/pkg/validator"
)

type createProductRequest struct {
	Name        string  `validate:"required,max=100"`
	Description *string `validate:"-"`
	CategoryID  int64   `validate:"required,gt=0"`
	Stock       int     `validate:"gte=0"`
}

// productHandler serves product CRUD. Create and update accept
// multipart/form-data so an image file can ride along with the fields.
type productHandler struct {
	productSvc service.ProductService
	uploads    *upload.Store
	validator  validator.Validator
}

func newProductHandler(productSvc service.ProductService, uploads *upload.Store, v validator.Validator) *productHandler {
	return &productHandler{
		productSvc: productSvc,
		uploads:    uploads,
		validator:  v,
	}
}

func (h *productHandler) create(w http.ResponseWriter, r *http.Request) error {
	if err := h.parseForm(r); err != nil {
		return err
	}

	req := createProductRequest{
		Name:        r.FormValue("name"),
		Description: formValuePtr(r, "description"),
	}

	categoryID, err := formInt64(r, "categoryId")
	if err != nil {
		return err
	}
	if categoryID == nil {
		return apperr.ValidationErr.WithMsg("categoryId is required")
	}
	req.CategoryID = *categoryID

	stock, err := formInt(r, "stock")
	if err != nil {
		return err
	}
	if stock != nil {
		req.Stock = *stock
	}

	if err := h.validator.Validate(req); err != nil {
		return err
	}

	imageURL, err := h.saveImage(r)
	if err != nil {
		return err
	}

	product, err := h.productSvc.Create(r.Context(), service.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		ImageURL:    imageURL,
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, product)
	return nil
}

func (h *productHandler) list(w http.ResponseWriter, r *http.Request) error {
	products, err := h.productSvc.List(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, products)
	return nil
}

func (h *productHandler) get(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	product, err := h.productSvc.Get(r.Context(), id)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, product)
	return nil
}

func (h *productHandler) update(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	if err := h.parseForm(r); err != nil {
		return err
	}

	params := service.UpdateProductParams{
		Name:        formValuePtr(r, "name"),
		Description: formValuePtr(r, "description"),
	}
	if params.Name != nil && (*params.Name == "" || len(*params.Name) > 100) {
		return apperr.ValidationErr.WithMsg("name must be between 1 and 100 characters")
	}

	if params.CategoryID, err = formInt64(r, "categoryId"); err != nil {
		return err
	}
	if params.CategoryID != nil && *params.CategoryID <= 0 {
		return apperr.ValidationErr.WithMsg("categoryId must be a positive integer")
	}

	if params.Stock, err = formInt(r, "stock"); err != nil {
		return err
	}
	if params.Stock != nil && *params.Stock < 0 {
		return apperr.ValidationErr.WithMsg("stock must not be negative")
	}

	if params.ImageURL, err = h.saveImage(r); err != nil {
		return err
	}

	product, err := h.productSvc.Update(r.Context(), id, params)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, product)
	return nil
}

func (h *productHandler) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	if err := h.productSvc.Delete(r.Context(), id); err != nil {
		return err
	}

	writeJSON(w, http.StatusNoContent, nil)
	return nil
}

func (h *productHandler) parseForm(r *http.Request) error {
	// Form fields plus one image stay comfortably inside memory at this limit;
	// the store enforces the per-file cap on the actual bytes.
	if err := r.ParseMultipartForm(h.uploads.MaxSize() + 1<<20); err != nil {
		return apperr.ValidationErr.WrapParent(err).WithMsg("malformed multipart form")
	}
	return nil
}

// saveImage persists the optional "image" form file and returns its public
// URL, or nil when no file was sent.
func (h *productHandler) saveImage(r *http.Request) (*string, error) {
	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperr.ValidationErr.WrapParent(err).WithMsg("malformed image upload")
	}
	defer file.Close()

	url, err := h.uploads.Save(file, header)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

func formValuePtr(r *http.Request, key string) *string {
	if r.MultipartForm == nil || len(r.MultipartForm.Value[key]) == 0 {
		return nil
	}
	v := r.FormValue(key)
	return &v
}

func formInt64(r *http.Request, key string) (*int64, error) {
	raw := formValuePtr(r, key)
	if raw == nil {
		return nil, nil
	}
	v, err := strconv.ParseInt(*raw, 10, 64)
	if err != nil {
		return nil, apperr.ValidationErr.WithMsg(key + " must be an integer")
	}
	return &v, nil
}

func formInt(r *http.Request, key string) (*int, error) {
	v, err := formInt64(r, key)
	if err != nil || v == nil {
		return nil, err
	}
	i := int(*v)
	return &i, nil
}
