package keys

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// KeyRecord is the stored form of a key: its encoded container bytes plus
// the metadata needed to decode and query it.
type KeyRecord struct {
	ID              string    `validate:"required,uuid"`
	KeyPairID       string    `validate:"required,uuid"`
	Algorithm       string    `validate:"required,oneof=RSA DSA EC"`
	Format          string    `validate:"required"`
	Type            string    `validate:"required,oneof=private public"`
	DateTimeCreated time.Time `validate:"required"`
	Material        []byte    `validate:"required"`
}

// Validate for validating KeyRecord struct
func (r *KeyRecord) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// KeyQuery filters and orders key record listings.
type KeyQuery struct {
	Algorithm string `validate:"omitempty,oneof=RSA DSA EC"`
	Type      string `validate:"omitempty,oneof=private public"`

	DateTimeCreated time.Time

	SortBy    string `validate:"omitempty,oneof=algorithm type date_time_created"`
	SortOrder string `validate:"omitempty,oneof=asc desc"`
	Limit     int    `validate:"min=0"`
	Offset    int    `validate:"min=0"`
}

// Validate for validating KeyQuery struct
func (q *KeyQuery) Validate() error {
	validate := validator.New()

	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("validation failed for KeyQuery: %w", err)
	}

	return nil
}
