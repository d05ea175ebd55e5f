// Package scan simulates the waste scanner. There is no recognition: every
// scan waits a fixed delay and reports the same plastic bottle.
package scan

import (
	"context"
	"time"

	"github.com/existflow/upcycle/internal/browse"
	"github.com/existflow/upcycle/internal/model"
)

// DefaultDelay is how long a scan takes
const DefaultDelay = 2500 * time.Millisecond

// StatusNeedsWashing is the inventory status of freshly scanned items
const StatusNeedsWashing = "Perlu Dicuci"

// Result is what the scanner detected
type Result struct {
	Name        string
	Category    string
	Weight      string
	CarbonSaved string
}

// InventoryItem turns the result into a new inventory entry
func (r Result) InventoryItem(now time.Time) model.InventoryItem {
	return model.InventoryItem{
		ID:        now.UnixMilli(),
		Name:      r.Name,
		Category:  r.Category,
		DateAdded: browse.FormatDate(now),
		Weight:    r.Weight,
		Status:    StatusNeedsWashing,
	}
}

// Scanner produces scan results
type Scanner struct {
	Delay time.Duration
}

// New creates a scanner with the given delay; zero uses DefaultDelay
func New(delay time.Duration) *Scanner {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scanner{Delay: delay}
}

// Scan waits for the scan to finish and returns the detection
func (s *Scanner) Scan(ctx context.Context) (Result, error) {
	timer := time.NewTimer(s.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-timer.C:
	}

	return Result{
		Name:        "Botol Plastik (PET)",
		Category:    "Plastik",
		Weight:      "0.05 Kg",
		CarbonSaved: "150g CO2",
	}, nil
}
