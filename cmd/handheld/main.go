// cmd/handheld/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"smartwarehouse/internal/clients"
	"smartwarehouse/internal/inventory"
	"smartwarehouse/internal/scanner"
)

// The handheld terminal: scans barcodes, upserts the matching item through
// the warehouse server, and prints live updates pushed by other clients.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverURL := getEnv("SERVER_URL", "http://localhost:5055")
	client := clients.NewInventoryClient(serverURL)

	connectionID, conn, err := connectPush(ctx, serverURL)
	if err != nil {
		log.Fatalf("Failed to connect push channel: %v", err)
	}
	defer conn.Close()
	go listenForUpdates(conn)

	var scan scanner.Scanner
	if getEnv("SCANNER", "prompt") == "simulated" {
		scan = scanner.NewSimulated("SKU-MOBILE-999")
	} else {
		scan = scanner.NewPrompt(os.Stdin, os.Stdout)
	}

	fmt.Printf("📦 Handheld connected to %s (connection %s)\n", serverURL, connectionID)

	for {
		sku, err := scan.Scan(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Scan failed, try again: %v", err)
			continue
		}

		if err := recordScan(ctx, client, connectionID, sku); err != nil {
			log.Printf("Failed to record scan: %v", err)
		}
	}
}

// recordScan bumps the quantity of the item with the scanned SKU, creating
// it on first sight. The originating connection id is forwarded so the
// server's broadcast skips this terminal.
func recordScan(ctx context.Context, client *clients.InventoryClient, origin uuid.UUID, sku string) error {
	items, err := client.GetItems(ctx)
	if err != nil {
		return err
	}

	candidate := inventory.Item{Name: "Item " + sku, Quantity: 1, SKU: sku}
	for _, item := range items {
		if item.SKU == sku {
			candidate = item
			if candidate.Quantity < inventory.MaxQuantity {
				candidate.Quantity++
			}
			break
		}
	}

	stored, err := client.SaveItem(ctx, candidate, origin)
	if err != nil {
		return err
	}

	fmt.Printf("✅ %s: %q quantity now %d\n", stored.SKU, stored.Name, stored.Quantity)
	return nil
}

// connectPush dials the websocket push endpoint and reads the Connected
// frame carrying this client's connection id.
func connectPush(ctx context.Context, serverURL string) (uuid.UUID, *websocket.Conn, error) {
	wsURL := strings.Replace(serverURL, "http", "ws", 1) + "/ws/inventory"
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return uuid.Nil, nil, err
	}

	var frame struct {
		Type         string    `json:"type"`
		ConnectionID uuid.UUID `json:"connectionId"`
	}
	if err := conn.ReadJSON(&frame); err != nil {
		conn.Close()
		return uuid.Nil, nil, err
	}

	return frame.ConnectionID, conn, nil
}

func listenForUpdates(conn *websocket.Conn) {
	for {
		var frame struct {
			Type     string    `json:"type"`
			ID       uuid.UUID `json:"id"`
			Quantity int       `json:"quantity"`
		}
		if err := conn.ReadJSON(&frame); err != nil {
			return
		}
		if frame.Type == "ReceiveItemUpdate" {
			fmt.Printf("🔔 Item %s quantity changed to %d\n", frame.ID, frame.Quantity)
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
