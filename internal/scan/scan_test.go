package scan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScan_FixedResult(t *testing.T) {
	s := New(time.Millisecond)

	r, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Botol Plastik (PET)", r.Name)
	require.Equal(t, "Plastik", r.Category)
	require.Equal(t, "0.05 Kg", r.Weight)
	require.Equal(t, "150g CO2", r.CarbonSaved)
}

func TestScan_Cancelled(t *testing.T) {
	s := New(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Scan(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestNew_DefaultDelay(t *testing.T) {
	require.Equal(t, DefaultDelay, New(0).Delay)
}

func TestResult_InventoryItem(t *testing.T) {
	now := time.Date(2024, 10, 3, 8, 0, 0, 0, time.UTC)
	item := Result{Name: "Botol", Category: "Plastik", Weight: "0.05 Kg"}.InventoryItem(now)

	require.Equal(t, now.UnixMilli(), item.ID)
	require.Equal(t, "03 Okt 2024", item.DateAdded)
	require.Equal(t, StatusNeedsWashing, item.Status)
}
