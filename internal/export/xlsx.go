package export

import (
	"fmt"
	"io"

	"github.com/jmehdipour/custgen/internal/model"
	"github.com/xuri/excelize/v2"
)

const sheetName = "customer"

// EncodeXLSX writes a single "customer" sheet with a bold header row.
// customer_id is stored as a number; every other column as text.
func EncodeXLSX(w io.Writer, records []model.Customer) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return fmt.Errorf("sheet index: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	header := make([]any, len(model.Columns))
	for i, c := range model.Columns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: c}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := r.Row()
		values := make([]any, len(row))
		values[0] = r.CustomerID
		for j := 1; j < len(row); j++ {
			values[j] = row[j]
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}
