package httpapi

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hda-data/internal/domain"

	"github.com/xuri/excelize/v2"
)

// exportColumn is one spreadsheet column: header label and the row key it reads.
type exportColumn struct {
	Header string
	Key    string
	Type   domain.FieldType
}

func exportColumns(d *domain.Descriptor) []exportColumn {
	cols := []exportColumn{{Header: "ID", Key: domain.ColumnID, Type: domain.FieldString}}
	for _, f := range d.Fields {
		cols = append(cols, exportColumn{Header: headerLabel(f.Name), Key: f.Name, Type: f.Type})
	}
	return append(cols,
		exportColumn{Header: "Created At", Key: domain.ColumnCreatedAt},
		exportColumn{Header: "Updated At", Key: domain.ColumnUpdatedAt},
	)
}

// GenerateCollectionExport renders records of one collection as an xlsx workbook.
func GenerateCollectionExport(kind domain.Kind, records []domain.Record) ([]byte, error) {
	d, err := domain.Lookup(kind)
	if err != nil {
		return nil, err
	}
	columns := exportColumns(d)

	f := excelize.NewFile()
	// closed after WriteTo below

	sheetName := sheetLabel(kind)
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
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
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col.Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, columnWidth(col)); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for rowIdx, rec := range records {
		row := rowIdx + 2 // row 1 is the header
		values, err := domain.Fields(rec)
		if err != nil {
			f.Close()
			return nil, err
		}
		meta := rec.GetMeta()
		values[domain.ColumnID] = meta.ID
		values[domain.ColumnCreatedAt] = meta.CreatedAt
		values[domain.ColumnUpdatedAt] = meta.UpdatedAt

		for colIdx, col := range columns {
			value := cellValue(col, values[col.Key])
			if value == nil || value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", row, colIdx+1, err)
			}
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
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
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(col exportColumn, v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return val.UTC().Format("2006-01-02 15:04:05")
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, listItem(item))
		}
		return strings.Join(parts, "; ")
	case float64:
		if col.Type == domain.FieldInteger {
			return int64(val)
		}
		return val
	default:
		return val
	}
}

func listItem(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case map[string]any:
		// upsell opportunity
		service, _ := v["service"].(string)
		priority, _ := v["priority"].(string)
		value, _ := v["value"].(float64)
		return fmt.Sprintf("%s (%s): %s", service, priority, strconv.FormatFloat(value, 'f', -1, 64))
	default:
		return fmt.Sprint(v)
	}
}

func headerLabel(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func sheetLabel(kind domain.Kind) string {
	label := headerLabel(string(kind))
	if len(label) > 31 {
		label = label[:31]
	}
	return label
}

func columnWidth(col exportColumn) float64 {
	switch {
	case col.Key == domain.ColumnID:
		return 38
	case col.Type == domain.FieldStringList, col.Type == domain.FieldUpsellList, col.Key == "notes":
		return 40
	case col.Key == domain.ColumnCreatedAt, col.Key == domain.ColumnUpdatedAt:
		return 20
	default:
		return 18
	}
}
