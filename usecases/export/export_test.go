package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/docneat/docneat-backend/models"
)

var sheet = models.Sheet{
	Columns: models.TransactionColumns,
	Rows: [][]any{
		{time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), "TESCO, STORES", 12.5, 0.0, nil, -12.5},
		{nil, "SALARY", 0.0, 1000.0, 1987.5, 1000.0},
	},
}

func TestWriteCsv(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCsv(&buf, sheet))

	assert.Equal(t,
		"Date,Description,Paid Out,Paid In,Balance,Amount\n"+
			"2024-01-12,\"TESCO, STORES\",12.50,0.00,,-12.50\n"+
			",SALARY,0.00,1000.00,1987.50,1000.00\n",
		buf.String())
}

func TestWriteCsv_empty_sheet(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteCsv(&buf, models.Sheet{Columns: models.TransactionColumns}))

	assert.Equal(t, "Date,Description,Paid Out,Paid In,Balance,Amount\n", buf.String())
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteExcel(&buf, sheet))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.TransactionColumns, rows[0])
	assert.Equal(t, "TESCO, STORES", rows[1][1])
	assert.Equal(t, "-12.5", rows[1][5])
	assert.Equal(t, "", rows[2][0])
	assert.Equal(t, "1987.5", rows[2][4])
}
