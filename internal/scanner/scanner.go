// internal/scanner/scanner.go
package scanner

import (
	"context"
	"fmt"
)

// Scanner supplies a scanned identifier string. Scan blocks until external
// input arrives (hardware trigger or operator prompt) or ctx is cancelled.
// A failed or cancelled scan surfaces as an error, never a default value.
type Scanner interface {
	Scan(ctx context.Context) (string, error)
}

// ScanError reports a failed or cancelled input acquisition.
type ScanError struct {
	Reason string
	Err    error
}

func (e *ScanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("scan failed: %s: %v", e.Reason, e.Err)
	}
	return "scan failed: " + e.Reason
}

func (e *ScanError) Unwrap() error { return e.Err }
