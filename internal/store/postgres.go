// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"smartwarehouse/internal/inventory"
)

// Postgres is the server-side durable item store. Upserts are a single
// INSERT ... ON CONFLICT statement, so concurrent writers to the same id are
// serialized by row-level locking and one write wins entirely; unrelated ids
// do not contend.
type Postgres struct {
	db     *sql.DB
	tracer trace.Tracer
}

// NewPostgres creates a Postgres-backed store on an open connection pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{
		db:     db,
		tracer: otel.Tracer("smartwarehouse/store"),
	}
}

// EnsureSchema creates the items table when it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS items (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			quantity INT NOT NULL,
			sku TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	return nil
}

// GetAll returns every stored item.
func (p *Postgres) GetAll(ctx context.Context) ([]inventory.Item, error) {
	ctx, span := p.tracer.Start(ctx, "store.get_all")
	defer span.End()

	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, quantity, sku
		FROM items
	`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []inventory.Item
	for rows.Next() {
		var item inventory.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.SKU); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	span.SetAttributes(attribute.Int("items.count", len(items)))
	return items, nil
}

// Get returns the item with the given id, or (nil, nil) when absent.
func (p *Postgres) Get(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	ctx, span := p.tracer.Start(ctx, "store.get",
		trace.WithAttributes(attribute.String("item.id", id.String())),
	)
	defer span.End()

	item := &inventory.Item{}
	err := p.db.QueryRowContext(ctx, `
		SELECT id, name, quantity, sku
		FROM items
		WHERE id = $1
	`, id).Scan(&item.ID, &item.Name, &item.Quantity, &item.SKU)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query item: %w", err)
	}

	return item, nil
}

// Upsert stores the item, assigning an identity when item.ID is the zero
// UUID, and returns the stored copy.
func (p *Postgres) Upsert(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	item.ID = inventory.AssignID(item.ID)

	ctx, span := p.tracer.Start(ctx, "store.upsert",
		trace.WithAttributes(
			attribute.String("item.id", item.ID.String()),
			attribute.String("item.sku", item.SKU),
		),
	)
	defer span.End()

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO items (id, name, quantity, sku)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    quantity = EXCLUDED.quantity,
		    sku = EXCLUDED.sku
	`, item.ID, item.Name, item.Quantity, item.SKU)
	if err != nil {
		return inventory.Item{}, fmt.Errorf("upsert item: %w", err)
	}

	return item, nil
}

// Remove deletes the item with the given id and reports whether it existed.
func (p *Postgres) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	ctx, span := p.tracer.Start(ctx, "store.remove",
		trace.WithAttributes(attribute.String("item.id", id.String())),
	)
	defer span.End()

	res, err := p.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}
