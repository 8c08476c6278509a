package model

import "time"

// Product carries the denormalized stock counter. Stock is only mutated
// through the transaction flow and never goes negative.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	CategoryID  int64     `json:"categoryId"`
	Stock       int       `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Category *ProductCategory `json:"category,omitempty"`
}
