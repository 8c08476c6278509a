package http

import (
	"net/http"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/http/middleware"
	"github.com/invenhq/inventory-api/internal/model"
	"github.com/invenhq/inventory-api/internal/service"
	"github.com/invenhq/inventory-api/pkg/validator"
)

type transactionItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

type createTransactionRequest struct {
	Type  model.TransactionType    `json:"type" validate:"required,enum"`
	Notes *string                  `json:"notes"`
	Items []transactionItemRequest `json:"items" validate:"required,min=1,dive"`
}

type transactionHandler struct {
	transactionSvc service.TransactionService
	validator      validator.Validator
}

func newTransactionHandler(transactionSvc service.TransactionService, v validator.Validator) *transactionHandler {
	return &transactionHandler{
		transactionSvc: transactionSvc,
		validator:      v,
	}
}

func (h *transactionHandler) create(w http.ResponseWriter, r *http.Request) error {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		return apperr.UnauthenticatedErr
	}

	var req createTransactionRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	params := service.CreateTransactionParams{
		Type:  req.Type,
		Notes: req.Notes,
		Items: make([]service.TransactionItemParams, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		params.Items = append(params.Items, service.TransactionItemParams{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	transaction, err := h.transactionSvc.Create(r.Context(), claims.AdminID, params)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, transaction)
	return nil
}

func (h *transactionHandler) list(w http.ResponseWriter, r *http.Request) error {
	transactions, err := h.transactionSvc.List(r.Context())
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, transactions)
	return nil
}

func (h *transactionHandler) get(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	transaction, err := h.transactionSvc.Get(r.Context(), id)
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, transaction)
	return nil
}
