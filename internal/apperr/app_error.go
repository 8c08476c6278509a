package apperr

import (
	"fmt"

	"github.com/invenhq/inventory-api/pkg/zerror"
)

const (
	ValidationErrorCode = "VALIDATION_FAILED"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	InvalidCredentialsErr = zerror.NewUnauthorized("INVALID_CREDENTIALS", "invalid credentials")
	UnauthenticatedErr    = zerror.NewUnauthorized("UNAUTHENTICATED", "missing or invalid access token")

	AdminNotFoundErr        = zerror.NewNotFound("ADMIN_NOT_FOUND", "admin not found")
	EmailConflictErr        = zerror.NewConflict("EMAIL_ALREADY_EXISTS", "email already exists")
	AdminHasTransactionsErr = zerror.NewConflict("ADMIN_HAS_TRANSACTIONS",
		"admin has transaction history and cannot be deleted")

	CategoryNotFoundErr = zerror.NewNotFound("CATEGORY_NOT_FOUND", "category not found")
	CategoryInUseErr    = zerror.NewConflict("CATEGORY_IN_USE",
		"category still has products and cannot be deleted")

	ProductNotFoundErr = zerror.NewNotFound("PRODUCT_NOT_FOUND", "product not found")
	ProductInUseErr    = zerror.NewConflict("PRODUCT_IN_USE",
		"product appears in transaction history and cannot be deleted")

	TransactionNotFoundErr = zerror.NewNotFound("TRANSACTION_NOT_FOUND", "transaction not found")
	InvalidImageErr = zerror.NewBadRequest("INVALID_IMAGE",
		"image must be a jpg, jpeg, png or gif file of at most 5 MB")
)

// NewInsufficientStock reports a stock_out item that exceeds the available
// stock, naming the product and the shortfall.
func NewInsufficientStock(productName string, have, need int) zerror.ZError {
	return zerror.NewBadRequest("INSUFFICIENT_STOCK",
		fmt.Sprintf("insufficient stock for product %q: have %d, need %d", productName, have, need))
}
