// internal/scanner/scanner_test.go
package scanner_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartwarehouse/internal/scanner"
)

func TestSimulatedScanReturnsConfiguredSKU(t *testing.T) {
	s := scanner.NewSimulated("SKU-MOBILE-999")
	s.Delay = time.Millisecond

	sku, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SKU-MOBILE-999", sku)
}

func TestSimulatedScanHonorsCancellation(t *testing.T) {
	s := scanner.NewSimulated("SKU-MOBILE-999")
	s.Delay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sku, err := s.Scan(ctx)
	require.Error(t, err)
	assert.Empty(t, sku, "a cancelled scan must not yield a default value")

	var serr *scanner.ScanError
	require.True(t, errors.As(err, &serr))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestPromptScanReadsLine(t *testing.T) {
	var out strings.Builder
	p := scanner.NewPrompt(strings.NewReader("  SKU-42\n"), &out)

	sku, err := p.Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SKU-42", sku)
	assert.Contains(t, out.String(), "Scan barcode")
}

func TestPromptScanRejectsEmptyInput(t *testing.T) {
	var out strings.Builder
	p := scanner.NewPrompt(strings.NewReader("\n"), &out)

	_, err := p.Scan(context.Background())
	require.Error(t, err)

	var serr *scanner.ScanError
	assert.True(t, errors.As(err, &serr))
}

func TestPromptScanHonorsCancellation(t *testing.T) {
	var out strings.Builder
	blocked, _ := io.Pipe() // reads block until something is written
	p := scanner.NewPrompt(blocked, &out)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := p.Scan(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
