package export

import (
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"github.com/docneat/docneat-backend/models"
)

const sheetName = "Sheet1"

// WriteExcel writes the sheet as a single worksheet workbook with typed cells.
func WriteExcel(w io.Writer, sheet models.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return errors.Wrap(err, "failed to create date style")
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return errors.Wrap(err, "failed to create amount style")
	}

	header := make([]any, len(sheet.Columns))
	for i, column := range sheet.Columns {
		header[i] = column
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return errors.Wrap(err, "failed to write excel header")
	}

	for r, row := range sheet.Rows {
		for c, value := range row {
			if c >= len(sheet.Columns) {
				break
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return errors.Wrap(err, "failed to compute cell name")
			}
			if err := setCell(f, axis, value, dateStyle, amountStyle); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write excel file")
	}
	return nil
}

func setCell(f *excelize.File, axis string, value any, dateStyle, amountStyle int) error {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		if err := f.SetCellValue(sheetName, axis, v); err != nil {
			return errors.Wrapf(err, "failed to write date cell %s", axis)
		}
		return errors.Wrapf(f.SetCellStyle(sheetName, axis, axis, dateStyle), "failed to style cell %s", axis)
	case float64:
		if err := f.SetCellFloat(sheetName, axis, v, -1, 64); err != nil {
			return errors.Wrapf(err, "failed to write number cell %s", axis)
		}
		return errors.Wrapf(f.SetCellStyle(sheetName, axis, axis, amountStyle), "failed to style cell %s", axis)
	default:
		return errors.Wrapf(f.SetCellValue(sheetName, axis, v), "failed to write cell %s", axis)
	}
}
