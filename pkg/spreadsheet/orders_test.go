package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildOrders(t *testing.T) {
	rows := []OrderRow{
		{
			ID:        "a1b2c3d4-0000-0000-0000-000000000000",
			Date:      time.Date(2026, 8, 29, 14, 30, 0, 0, time.UTC),
			Client:    "Ana Rojas",
			Phone:     "+56911111111",
			Status:    "PAID",
			Paid:      true,
			Total:     "25.50",
			ItemCount: 2,
		},
		{
			ID:     "short",
			Date:   time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
			Client: "Walk-in",
			Status: "PENDING",
		},
	}

	payload, err := BuildOrders(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, []string{"ID", "Date", "Client", "Phone", "Status", "Paid", "Total", "Items"}, got[0])

	assert.Equal(t, "a1b2c3d4", got[1][0], "long ids shortened to 8 chars")
	assert.Equal(t, "2026-08-29 14:30", got[1][1])
	assert.Equal(t, "Ana Rojas", got[1][2])
	assert.Equal(t, "Y", got[1][5])
	assert.Equal(t, "25.50", got[1][6])
	assert.Equal(t, "2", got[1][7])

	assert.Equal(t, "short", got[2][0], "short ids pass through")
	assert.Equal(t, "N", got[2][5])
}

func TestBuildOrdersEmpty(t *testing.T) {
	payload, err := BuildOrders(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, got, 1, "headers only")
}
