package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesFromTextLayer(t *testing.T) {
	page := "Your Statement\n" +
		"Date        Payment type and details      Paid out     Paid in     Balance\n" +
		"12 Jan 24   CARD PAYMENT TESCO               12.50                  987.50\n" +
		"13 Jan 24   SALARY                                      1,000.00  1,987.50\n" +
		"            continued description\n" +
		"Page 1 of 3\n"

	tables := TablesFromTextLayer([]string{page, "no table on this page"})

	require.Len(t, tables, 1)
	assert.Equal(t, []string{"Date", "Payment type and details", "Paid out", "Paid in", "Balance"}, tables[0].Header)
	require.Len(t, tables[0].Rows, 2)
	assert.Equal(t, []string{"12 Jan 24", "CARD PAYMENT TESCO", "12.50", "", "987.50"}, tables[0].Rows[0])
	assert.Equal(t, []string{"13 Jan 24", "SALARY", "", "1,000.00", "1,987.50"}, tables[0].Rows[1])
}

func TestTablesFromTextLayer_header_required(t *testing.T) {
	tables := TablesFromTextLayer([]string{"12 Jan 24  SHOP  12.50\n13 Jan 24  SHOP  1.00"})
	assert.Empty(t, tables)
}

func TestTablesFromTextLayer_repeated_header_starts_new_table(t *testing.T) {
	page := "Date  Details  Paid out  Paid in\n" +
		"1 Jan 24  A  1.00  0.00\n" +
		"Date  Details  Paid out  Paid in\n" +
		"2 Jan 24  B  2.00  0.00\n"

	tables := TablesFromTextLayer([]string{page})

	require.Len(t, tables, 2)
	assert.Equal(t, "A", tables[0].Rows[0][1])
	assert.Equal(t, "B", tables[1].Rows[0][1])
}
