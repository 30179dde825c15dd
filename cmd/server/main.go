// cmd/server/main.go
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"smartwarehouse/internal/hub"
	"smartwarehouse/internal/inventory"
	"smartwarehouse/internal/store"
	"smartwarehouse/internal/telemetry"
)

func main() {
	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx, "smartwarehouse-server")
	if err != nil {
		log.Fatalf("Failed to set up telemetry: %v", err)
	}
	defer shutdown(ctx)

	itemStore, err := buildStore(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	updates := hub.New()
	svc := inventory.NewService(itemStore, updates)
	handler := inventory.NewHandler(svc)

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Mount("/api/inventory", handler.Routes())
	router.Handle("/ws/inventory", hub.NewWSHandler(updates))

	port := getEnv("PORT", "5055")

	fmt.Printf("🚀 Starting Warehouse Server on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

// buildStore selects the server store: Postgres when DATABASE_URL is set,
// otherwise the in-memory store (development and tests).
func buildStore(ctx context.Context) (inventory.Store, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Printf("DATABASE_URL not set, using in-memory store")
		return store.NewMemory(), nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	pg := store.NewPostgres(db)
	if err := pg.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return pg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
