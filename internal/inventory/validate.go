// internal/inventory/validate.go
package inventory

import (
	"fmt"
	"strings"
)

const (
	// MinQuantity and MaxQuantity bound the accepted quantity range, inclusive.
	MinQuantity = 1
	MaxQuantity = 1000
)

// FieldError names a single invalid field and the reason it was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports every invalid field of a rejected save. A save
// that fails validation performs no store mutation and no broadcast.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// normalize applies stored-form normalization to a candidate item. Names are
// kept trimmed; no leading or trailing whitespace survives a save.
func normalize(item Item) Item {
	item.Name = strings.TrimSpace(item.Name)
	return item
}

// validate checks a normalized candidate against the field rules. It returns
// nil when the item is acceptable.
func validate(item Item) error {
	var fields []FieldError
	if item.Name == "" {
		fields = append(fields, FieldError{Field: "name", Message: "name is required"})
	}
	if item.Quantity < MinQuantity || item.Quantity > MaxQuantity {
		fields = append(fields, FieldError{
			Field:   "quantity",
			Message: fmt.Sprintf("quantity must be between %d and %d", MinQuantity, MaxQuantity),
		})
	}
	if item.SKU == "" {
		fields = append(fields, FieldError{Field: "sku", Message: "sku is required"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
