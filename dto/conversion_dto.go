package dto

import (
	"fmt"
	"math"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/docneat/docneat-backend/models"
)

const PreviewSize = 3

// PreviewRecord encodes to a json object whose keys follow the sheet column order.
type PreviewRecord = *orderedmap.OrderedMap[string, any]

type ConversionResponse struct {
	Preview  []PreviewRecord `json:"preview"`
	ExcelUrl string          `json:"excel_url"`
	CsvUrl   string          `json:"csv_url"`
	Method   string          `json:"method"`
	Pages    int             `json:"pages"`
}

func AdaptConversionResponse(conversion models.Conversion) ConversionResponse {
	return ConversionResponse{
		Preview:  AdaptPreview(conversion.Sheet),
		ExcelUrl: DownloadUrl(conversion.ExcelFileName()),
		CsvUrl:   DownloadUrl(conversion.CsvFileName()),
		Method:   string(conversion.Method),
		Pages:    conversion.Pages,
	}
}

func DownloadUrl(fileName string) string {
	return fmt.Sprintf("/download/%s", fileName)
}

// AdaptPreview returns the first rows of a sheet as records keyed by column name. Missing and
// non-finite values are rendered as nil, so that the preview can always be encoded to json.
func AdaptPreview(sheet models.Sheet) []PreviewRecord {
	head := sheet.Head(PreviewSize)
	records := make([]PreviewRecord, len(head.Rows))
	for i, row := range head.Rows {
		record := orderedmap.New[string, any](len(head.Columns))
		for j, column := range head.Columns {
			var value any
			if j < len(row) {
				value = previewValue(row[j])
			}
			record.Set(column, value)
		}
		records[i] = record
	}
	return records
}

func previewValue(value any) any {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return v
	}
}
