package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/docneat/docneat-backend/models"
)

const dateFormat = "2006-01-02"

// WriteCsv writes the sheet with a header row. Dates use the ISO format, numbers keep two decimals
// and missing values are left empty.
func WriteCsv(w io.Writer, sheet models.Sheet) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(sheet.Columns); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}

	record := make([]string, len(sheet.Columns))
	for _, row := range sheet.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = formatCsvValue(row[i])
			}
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "failed to write csv row")
		}
	}

	writer.Flush()
	return errors.Wrap(writer.Error(), "failed to flush csv")
}

func formatCsvValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case time.Time:
		return v.Format(dateFormat)
	default:
		return ""
	}
}
