// internal/clients/inventory_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"smartwarehouse/internal/inventory"
)

// TransportError reports a failed remote call: the network failed, the
// response could not be decoded, or the server answered with an unexpected
// status. A missing item is not a transport error.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// InventoryClient is the remote access facade: it implements
// inventory.Service against a warehouse server that lives in another
// process, so callers compose against the same contract whether the store is
// local or remote.
type InventoryClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewInventoryClient creates a client for the server at baseURL.
func NewInventoryClient(baseURL string) *InventoryClient {
	return &InventoryClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetItems fetches every item.
func (c *InventoryClient) GetItems(ctx context.Context) ([]inventory.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/inventory", nil)
	if err != nil {
		return nil, &TransportError{Op: "get items", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "get items", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: "get items", Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	var items []inventory.Item
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, &TransportError{Op: "get items", Err: err}
	}
	return items, nil
}

// GetItem fetches a single item, returning (nil, nil) when the server
// reports it absent.
func (c *InventoryClient) GetItem(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/api/inventory/%s", c.baseURL, id), nil)
	if err != nil {
		return nil, &TransportError{Op: "get item", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "get item", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Op: "get item", Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	var item inventory.Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, &TransportError{Op: "get item", Err: err}
	}
	return &item, nil
}

// SaveItem submits a candidate item and returns the canonical stored copy.
// A non-nil origin is forwarded so the server's broadcast skips the caller's
// own push connection. Server-side validation failures come back as
// *inventory.ValidationError, not as transport errors.
func (c *InventoryClient) SaveItem(ctx context.Context, item inventory.Item, origin uuid.UUID) (inventory.Item, error) {
	body, err := json.Marshal(item)
	if err != nil {
		return inventory.Item{}, &TransportError{Op: "save item", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/inventory", bytes.NewBuffer(body))
	if err != nil {
		return inventory.Item{}, &TransportError{Op: "save item", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if origin != uuid.Nil {
		req.Header.Set("X-Connection-ID", origin.String())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return inventory.Item{}, &TransportError{Op: "save item", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		var payload struct {
			Errors []inventory.FieldError `json:"errors"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || len(payload.Errors) == 0 {
			return inventory.Item{}, &TransportError{Op: "save item", Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
		}
		return inventory.Item{}, &inventory.ValidationError{Fields: payload.Errors}
	}
	if resp.StatusCode != http.StatusOK {
		return inventory.Item{}, &TransportError{Op: "save item", Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}

	var stored inventory.Item
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return inventory.Item{}, &TransportError{Op: "save item", Err: err}
	}
	return stored, nil
}

// RemoveItem deletes an item and reports whether the server had it.
func (c *InventoryClient) RemoveItem(ctx context.Context, id uuid.UUID) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/api/inventory/%s", c.baseURL, id), nil)
	if err != nil {
		return false, &TransportError{Op: "remove item", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, &TransportError{Op: "remove item", Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &TransportError{Op: "remove item", Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
	}
}
