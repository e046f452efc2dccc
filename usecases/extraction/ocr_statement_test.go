package extraction

import (
	"testing"
	"time"

	"github.com/guregu/null/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ocrStatement = `HSBC > UK
Account Name
Your BUSINESS CURRENT ACCOUNT details
some header noise 1.00
12 Jan 24 VIS CARD PAYMENT
TESCO STORES 12.50 987.50
Visa Rate 1.25
13 Jan 24 CR SALARY
ACME LTD 0.00 1,000.00 1,987.50

14 Jan 24 BALANCE CARRIED FORWARD 1,987.50
`

func TestParseStatementText(t *testing.T) {
	transactions := ParseStatementText(ocrStatement)

	require.Len(t, transactions, 3)

	first := transactions[0]
	assert.Equal(t, null.TimeFrom(time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)), first.Date)
	assert.Equal(t, "VIS CARD PAYMENT TESCO STORES Visa Rate", first.Description)
	// "Visa Rate" lines carry a paid out amount, overriding the previous one
	assert.Equal(t, null.FloatFrom(1.25), first.PaidOut)
	assert.Equal(t, null.FloatFrom(987.50), first.PaidIn)
	assert.Equal(t, null.Float{}, first.Balance)
	assert.InDelta(t, 986.25, first.Amount, 1e-9)

	second := transactions[1]
	assert.Equal(t, "CR SALARY ACME LTD", second.Description)
	assert.Equal(t, null.FloatFrom(0), second.PaidOut)
	assert.Equal(t, null.FloatFrom(1000), second.PaidIn)
	assert.Equal(t, null.FloatFrom(1987.50), second.Balance)
	assert.InDelta(t, 1000, second.Amount, 1e-9)

	// a date line is not scanned for amounts
	third := transactions[2]
	assert.Equal(t, "BALANCE CARRIED FORWARD 1,987.50", third.Description)
	assert.Zero(t, third.Amount)
}

func TestParseStatementText_four_digit_year(t *testing.T) {
	transactions := ParseStatementText("5 Feb 2024 DIRECT DEBIT\n20.00 0.00")

	require.Len(t, transactions, 1)
	assert.Equal(t, null.TimeFrom(time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)), transactions[0].Date)
	assert.Equal(t, "DIRECT DEBIT", transactions[0].Description)
	assert.InDelta(t, -20, transactions[0].Amount, 1e-9)
}

func TestParseStatementText_no_date(t *testing.T) {
	assert.Empty(t, ParseStatementText("nothing that looks like\na statement 12.00"))
}
