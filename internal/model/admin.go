package model

import (
	"fmt"
	"time"
)

// Gender is the admin gender enum.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Validate implements the enum contract used by the request validator.
func (g Gender) Validate() error {
	switch g {
	case GenderMale, GenderFemale:
		return nil
	}
	return fmt.Errorf("unknown gender: %s", g)
}

// Admin is the persistence-layer record. The password hash never leaves the
// process: it is excluded from serialization and responses are built from
// this struct's public fields only.
type Admin struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	BirthDate    time.Time `json:"birthDate"`
	Gender       Gender    `json:"gender"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
