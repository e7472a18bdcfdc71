//go:build !cgo

package hal

import (
	"context"
	"fmt"
)

func RunWindow(_ context.Context, _ WindowConfig, _ func(ctx context.Context, s Surface, log Logger) error) error {
	return fmt.Errorf("window mode requires cgo (build/run with CGO_ENABLED=1): %w", ErrNotImplemented)
}
