// Package spreadsheet builds the xlsx files the admin panel downloads.
package spreadsheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// OrderRow is one exported order record.
type OrderRow struct {
	ID        string
	Date      time.Time
	Client    string
	Phone     string
	Status    string
	Paid      bool
	Total     string
	ItemCount int
}

var orderHeaders = []string{"ID", "Date", "Client", "Phone", "Status", "Paid", "Total", "Items"}

// BuildOrders renders order rows into an xlsx workbook and returns its bytes.
// IDs are shortened to their first 8 characters; Paid renders as Y/N.
func BuildOrders(rows []OrderRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Orders"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, h := range orderHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, row := range rows {
		paid := "N"
		if row.Paid {
			paid = "Y"
		}
		values := []interface{}{
			shortID(row.ID),
			row.Date.Format("2006-01-02 15:04"),
			row.Client,
			row.Phone,
			row.Status,
			paid,
			row.Total,
			row.ItemCount,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
