// internal/scanner/simulated.go
package scanner

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"
)

// Simulated mimics a hardware barcode scanner: each scan takes a fixed
// trigger delay and yields a configured SKU. Used on devices without camera
// access and in tests.
type Simulated struct {
	SKU   string
	Delay time.Duration
}

// NewSimulated creates a simulated scanner with the default trigger delay.
func NewSimulated(sku string) *Simulated {
	return &Simulated{SKU: sku, Delay: 2 * time.Second}
}

func (s *Simulated) Scan(ctx context.Context) (string, error) {
	select {
	case <-time.After(s.Delay):
		return s.SKU, nil
	case <-ctx.Done():
		return "", &ScanError{Reason: "cancelled", Err: ctx.Err()}
	}
}

// Prompt asks an operator to type a barcode on an interactive terminal. It
// reads a single line from In, trimming the trailing newline.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

// NewPrompt creates a prompt scanner over the given streams.
func NewPrompt(in io.Reader, out io.Writer) *Prompt {
	return &Prompt{In: in, Out: out}
}

func (p *Prompt) Scan(ctx context.Context) (string, error) {
	if _, err := io.WriteString(p.Out, "Scan barcode: "); err != nil {
		return "", &ScanError{Reason: "prompt write failed", Err: err}
	}

	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := bufio.NewReader(p.In).ReadString('\n')
		ch <- result{line: line, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return "", &ScanError{Reason: "input read failed", Err: res.err}
		}
		barcode := strings.TrimSpace(res.line)
		if barcode == "" {
			return "", &ScanError{Reason: "empty barcode"}
		}
		return barcode, nil
	case <-ctx.Done():
		return "", &ScanError{Reason: "cancelled", Err: ctx.Err()}
	}
}
