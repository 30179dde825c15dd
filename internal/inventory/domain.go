// internal/inventory/domain.go
package inventory

import (
	"github.com/google/uuid"
)

// Item is a single tracked inventory entry. The zero UUID means the item
// has not been persisted yet; the store assigns an identity on first save.
type Item struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity int       `json:"quantity"`
	SKU      string    `json:"sku"`
}

// ItemUpdate is the event broadcast to connected observers after a save.
type ItemUpdate struct {
	ID       uuid.UUID `json:"id"`
	Quantity int       `json:"quantity"`
}

// AssignID returns id unchanged when it is already set, otherwise a freshly
// generated identifier. Identities are never reassigned after first save.
func AssignID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
