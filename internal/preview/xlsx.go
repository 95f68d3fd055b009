package preview

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	fieldsSheet  = "Fields"
	samplesSheet = "Samples"
)

// WriteXLSX exports the view as a workbook with a Fields and a Samples sheet.
func WriteXLSX(w io.Writer, v View) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", fieldsSheet); err != nil {
		return fmt.Errorf("preview.WriteXLSX: %w", err)
	}
	if err := f.SetSheetRow(fieldsSheet, "A1", &[]interface{}{"Field", "Value", "Missing"}); err != nil {
		return fmt.Errorf("preview.WriteXLSX: %w", err)
	}
	for i, e := range v.Fields() {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(fieldsSheet, cell, &[]interface{}{e.Label, e.Value, e.Missing}); err != nil {
			return fmt.Errorf("preview.WriteXLSX: %w", err)
		}
	}

	if _, err := f.NewSheet(samplesSheet); err != nil {
		return fmt.Errorf("preview.WriteXLSX: %w", err)
	}
	if err := f.SetSheetRow(samplesSheet, "A1", &[]interface{}{"#", "Label", "Input", "Output", "Legacy"}); err != nil {
		return fmt.Errorf("preview.WriteXLSX: %w", err)
	}
	for i, s := range v.Samples {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(samplesSheet, cell, &[]interface{}{i + 1, s.Label, s.Input, s.Output, s.Legacy}); err != nil {
			return fmt.Errorf("preview.WriteXLSX: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("preview.WriteXLSX: %w", err)
	}
	return nil
}
