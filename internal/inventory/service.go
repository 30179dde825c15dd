// internal/inventory/service.go
package inventory

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the interface for the inventory service. The local
// implementation (NewService) and the remote HTTP facade both satisfy it,
// so composition picks one at wiring time.
type Service interface {
	GetItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (*Item, error)
	SaveItem(ctx context.Context, item Item, origin uuid.UUID) (Item, error)
	RemoveItem(ctx context.Context, id uuid.UUID) (bool, error)
}

// Store is the persistence contract shared by the in-memory and Postgres
// implementations. Get returns (nil, nil) when no item has the given id;
// absence is not an error. Upsert assigns an identity when item.ID is the
// zero UUID and always returns the stored copy.
type Store interface {
	GetAll(ctx context.Context) ([]Item, error)
	Get(ctx context.Context, id uuid.UUID) (*Item, error)
	Upsert(ctx context.Context, item Item) (Item, error)
	Remove(ctx context.Context, id uuid.UUID) (bool, error)
}

// Broadcaster pushes an update event to every connected observer except the
// excluded one. uuid.Nil excludes nobody. Delivery failures stay inside the
// broadcaster; Publish never reports an error to the saving caller.
type Broadcaster interface {
	Publish(ev ItemUpdate, exclude uuid.UUID)
}
