package httpapi

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Kaiwei0323/web-steve/internal/domain"
)

// SpecificationsExportHeader is the column set of the spreadsheet export.
var SpecificationsExportHeader = []string{
	"Device Name",
	"Model",
	"Status",
	"Performance (TOPS)",
	"Tag",
	"Processor",
	"Memory",
	"Storage",
	"OS",
	"Applications",
}

// GenerateSpecificationsExport renders canonical device views as an xlsx
// spec table, one row per device.
func GenerateSpecificationsExport(views []domain.Document) ([]byte, error) {
	f := excelize.NewFile()
	// Don't defer Close() here; WriteTo needs the file open.

	sheetName := "Device Specifications"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range SpecificationsExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	columnWidths := []float64{
		20, // Device Name
		15, // Model
		12, // Status
		18, // Performance (TOPS)
		15, // Tag
		30, // Processor
		22, // Memory
		28, // Storage
		26, // OS
		50, // Applications
	}
	for i := range SpecificationsExportHeader {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if i < len(columnWidths) && columnWidths[i] > 0 {
			if err := f.SetColWidth(sheetName, col, col, columnWidths[i]); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for rowIdx, view := range views {
		row := rowIdx + 2 // data starts under the header row
		for colIdx, header := range SpecificationsExportHeader {
			var value any
			switch header {
			case "Device Name":
				value = getStringValue(view, "name")
			case "Model":
				value = getStringValue(view, "model")
			case "Status":
				value = getStringValue(view, "status")
			case "Performance (TOPS)":
				value = view["performance"]
			case "Tag":
				value = getStringValue(view, "tag")
			case "Processor":
				value = getStringValue(view, "Processor")
			case "Memory":
				value = getStringValue(view, "Memory")
			case "Storage":
				value = getStringValue(view, "Storage")
			case "OS":
				value = getStringValue(view, "OS")
			case "Applications":
				value = joinNames(view["applications"])
			}

			if value != nil && value != "" {
				if err := setCellValue(f, sheetName, colIdx+1, row, value); err != nil {
					f.Close()
					return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, colIdx+1, err)
				}
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func setCellValue(f *excelize.File, sheet string, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func getStringValue(view domain.Document, key string) string {
	if val, ok := view[key].(string); ok {
		return val
	}
	return ""
}

// joinNames flattens an application name list regardless of how the
// slice was typed on its way through JSON.
func joinNames(v any) string {
	switch names := v.(type) {
	case []string:
		return strings.Join(names, ", ")
	case []any:
		parts := make([]string, 0, len(names))
		for _, n := range names {
			if s, ok := n.(string); ok {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
