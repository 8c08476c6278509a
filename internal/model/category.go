package model

import "time"

// ProductCategory groups products. Deleting a category with products attached
// is rejected, so Products can only be empty by having none.
type ProductCategory struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Products []Product `json:"products,omitempty"`
}
