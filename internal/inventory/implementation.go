// internal/inventory/implementation.go
package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// service implements the Service interface against a Store and a Broadcaster.
type service struct {
	store       Store
	broadcaster Broadcaster
	tracer      trace.Tracer
	saves       metric.Int64Counter
}

// NewService creates a new inventory service instance.
func NewService(store Store, broadcaster Broadcaster) Service {
	saves, _ := otel.Meter("smartwarehouse/inventory").Int64Counter("inventory.saves")
	return &service{
		store:       store,
		broadcaster: broadcaster,
		tracer:      otel.Tracer("smartwarehouse/inventory"),
		saves:       saves,
	}
}

// GetItems returns every stored item.
func (s *service) GetItems(ctx context.Context) ([]Item, error) {
	return s.store.GetAll(ctx)
}

// GetItem returns the item with the given id, or (nil, nil) when absent.
func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	return s.store.Get(ctx, id)
}

// SaveItem validates and persists a candidate item, then broadcasts the
// update to every observer except the originator. The returned item is the
// canonical stored copy, so server-assigned fields are visible to the caller.
//
// A candidate carrying an id unknown to the store is inserted under that id
// as given; identities supplied by clients are honored, never regenerated.
func (s *service) SaveItem(ctx context.Context, item Item, origin uuid.UUID) (Item, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.save",
		trace.WithAttributes(
			attribute.String("item.id", item.ID.String()),
			attribute.String("item.sku", item.SKU),
		),
	)
	defer span.End()

	item = normalize(item)
	if err := validate(item); err != nil {
		span.SetAttributes(attribute.Bool("validation.failed", true))
		return Item{}, err
	}

	if item.ID != uuid.Nil {
		existing, err := s.store.Get(ctx, item.ID)
		if err != nil {
			return Item{}, fmt.Errorf("failed to look up existing item: %w", err)
		}
		if existing != nil {
			// Full-field overwrite; identity preserved.
			item.ID = existing.ID
		}
	}

	stored, err := s.store.Upsert(ctx, item)
	if err != nil {
		return Item{}, fmt.Errorf("failed to persist item: %w", err)
	}

	s.saves.Add(ctx, 1)
	s.broadcaster.Publish(ItemUpdate{ID: stored.ID, Quantity: stored.Quantity}, origin)

	return stored, nil
}

// RemoveItem deletes the item with the given id. It reports whether an entry
// existed and never fails on an unknown id.
func (s *service) RemoveItem(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.remove",
		trace.WithAttributes(attribute.String("item.id", id.String())),
	)
	defer span.End()

	return s.store.Remove(ctx, id)
}
