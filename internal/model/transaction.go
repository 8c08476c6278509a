package model

import (
	"fmt"
	"time"
)

// TransactionType is the stock movement direction.
type TransactionType string

const (
	TransactionStockIn  TransactionType = "stock_in"
	TransactionStockOut TransactionType = "stock_out"
)

// Validate implements the enum contract used by the request validator.
func (t TransactionType) Validate() error {
	switch t {
	case TransactionStockIn, TransactionStockOut:
		return nil
	}
	return fmt.Errorf("unknown transaction type: %s", t)
}

// Transaction is an immutable audit record of a batch stock adjustment.
// It has no update endpoint; items are created atomically with the header.
type Transaction struct {
	ID        int64           `json:"id"`
	Type      TransactionType `json:"type"`
	AdminID   int64           `json:"adminId"`
	Notes     *string         `json:"notes"`
	CreatedAt time.Time       `json:"createdAt"`

	Admin *Admin            `json:"admin,omitempty"`
	Items []TransactionItem `json:"items"`
}

// TransactionItem is one line of a transaction: a product and the quantity
// moved in the transaction's direction.
type TransactionItem struct {
	ID            int64 `json:"id"`
	TransactionID int64 `json:"transactionId"`
	ProductID     int64 `json:"productId"`
	Quantity      int   `json:"quantity"`

	Product *Product `json:"product,omitempty"`
}
