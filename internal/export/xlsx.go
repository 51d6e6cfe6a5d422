package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"salesdash/internal/models"
)

const (
	dataSheet    = "Filtered Data"
	summarySheet = "Summary"
)

// WriteXLSX writes the filtered table and its KPI snapshot as a workbook:
// one data sheet in row order, one summary sheet.
func WriteXLSX(w io.Writer, records []models.Record, kpi models.KPISnapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(dataSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := setRow(f, dataSheet, 1, header); err != nil {
		return err
	}
	for i, rec := range records {
		row := []any{
			rec.OrderID,
			rec.Date.Format("2006-01-02"),
			rec.Product,
			rec.Region,
			rec.City,
			nil,
			nil,
			rec.UnitPrice,
			rec.Quantity,
			rec.Revenue,
		}
		if rec.HasCoords {
			row[5] = rec.Lat
			row[6] = rec.Lon
		}
		if err := setRow(f, dataSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	summary := [][]any{
		{"total_revenue", kpi.TotalRevenue},
		{"total_orders", kpi.TotalOrders},
		{"total_quantity", kpi.TotalQuantity},
		{"unique_products", kpi.UniqueProducts},
		{"rows", len(records)},
	}
	for i, row := range summary {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}
