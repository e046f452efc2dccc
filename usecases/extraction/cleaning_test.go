package extraction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docneat/docneat-backend/models"
)

func TestCleanTable_transactions(t *testing.T) {
	sheet := CleanTable(models.Table{
		Header: []string{" Date ", "Payment type and details", "Paid out", "Paid in", "Balance"},
		Rows: [][]string{
			{"12/01/2024", "TESCO", "£1,012.50", "", "987.50"},
			{"", "", "", "", ""},
			{"13 Jan 24", "BALANCE BROUGHT FORWARD", "", "100.00", ""},
			{"not a date", "SALARY", "0.10", "0.30", "n/a"},
			{"14 Jan 24", "NOTHING MOVED", "", "", ""},
		},
	})

	assert.Equal(t, models.TransactionColumns, sheet.Columns)
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, []any{
		time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), "TESCO", 1012.5, 0.0, 987.5, -1012.5,
	}, sheet.Rows[0])
	assert.Equal(t, []any{nil, "SALARY", 0.1, 0.3, nil, 0.2}, sheet.Rows[1])
}

func TestCleanTable_passthrough(t *testing.T) {
	sheet := CleanTable(models.Table{
		Header: []string{" Name ", "Value"},
		Rows:   [][]string{{" a ", "1"}, {"", " "}, {"b"}},
	})

	assert.Equal(t, []string{"Name", "Value"}, sheet.Columns)
	assert.Equal(t, [][]any{{"a", "1"}, {"b", ""}}, sheet.Rows)
}

func TestCleanTable_colliding_headers(t *testing.T) {
	sheet := CleanTable(models.Table{
		Header: []string{"Date", "Details", "Description", "Reference"},
		Rows:   [][]string{{"12 Jan 24", "CARD PAYMENT", "TESCO STORES", "REF1"}},
	})

	assert.Equal(t, []string{"Date", "Description", "Description.1", "Reference"}, sheet.Columns)
	assert.Equal(t, [][]any{{"12 Jan 24", "CARD PAYMENT", "TESCO STORES", "REF1"}}, sheet.Rows)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]any{
		"1,234.56": 1234.56,
		"£12.00":   12.0,
		"(5.00)":   -5.0,
		"5.00-":    -5.0,
		"":         nil,
		"abc":      nil,
		"NaN":      nil,
	}
	for input, expected := range cases {
		got := parseAmount(input)
		if expected == nil {
			assert.False(t, got.Valid, input)
			continue
		}
		assert.InDelta(t, expected, got.Float64, 1e-9, input)
	}
}

func TestCanonicalHeader(t *testing.T) {
	cases := map[string]string{
		" Date ":                   "Date",
		"Payment type and details": "Description",
		"Money  in":                "Paid In",
		"Paid 0ut":                 "Paid Out",
		"Descriptlon":              "Description",
		"Balance.1":                "Balance.1",
		"Reference":                "Reference",
	}
	for input, expected := range cases {
		assert.Equal(t, expected, canonicalHeader(input), input)
	}
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "Office rent 25.00", normalizeText("O\ufb03ce\u00a0rent\u200b \uff12\uff15.00"))
}
