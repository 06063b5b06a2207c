// Package record exports saved recommendations.
package record

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"agrismart/entities"
)

const exportSheet = "Recommendations"

var exportHeader = []any{"ID", "Kind", "Created At", "Session", "Input", "Output"}

// WriteXLSX renders the records as a single-sheet workbook, one row each.
func WriteXLSX(w io.Writer, recs []entities.SavedRecommendation) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return err
	}
	for i, r := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			r.ID,
			r.Kind,
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.SessionID,
			compactJSON(r.Input),
			compactJSON(r.Output),
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(exportSheet, "E", "F", 60); err != nil {
		return err
	}
	return f.Write(w)
}

func compactJSON(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Sprintf("%v", m)
	}
	return string(b)
}
