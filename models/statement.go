package models

import (
	"time"

	"github.com/guregu/null/v5"
)

// Column names of a normalized statement
const (
	ColumnDate        = "Date"
	ColumnDescription = "Description"
	ColumnPaidOut     = "Paid Out"
	ColumnPaidIn      = "Paid In"
	ColumnBalance     = "Balance"
	ColumnAmount      = "Amount"
)

var TransactionColumns = []string{
	ColumnDate,
	ColumnDescription,
	ColumnPaidOut,
	ColumnPaidIn,
	ColumnBalance,
	ColumnAmount,
}

// Table is a raw table, as extracted from a document before any cleaning.
type Table struct {
	Header []string
	Rows   [][]string
}

func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

type Transaction struct {
	Date        null.Time
	Description string
	PaidOut     null.Float
	PaidIn      null.Float
	Balance     null.Float
	Amount      float64
}

func (t Transaction) Values() []any {
	return []any{
		nullTimeValue(t.Date),
		t.Description,
		nullFloatValue(t.PaidOut),
		nullFloatValue(t.PaidIn),
		nullFloatValue(t.Balance),
		t.Amount,
	}
}

// Sheet is the exported form of a statement. Cell values are nil, string, float64 or time.Time.
type Sheet struct {
	Columns []string
	Rows    [][]any
}

func (s Sheet) IsEmpty() bool {
	return len(s.Rows) == 0
}

// Head returns a sheet containing at most the n first rows
func (s Sheet) Head(n int) Sheet {
	if n > len(s.Rows) {
		n = len(s.Rows)
	}
	return Sheet{Columns: s.Columns, Rows: s.Rows[:n]}
}

func SheetFromTransactions(transactions []Transaction) Sheet {
	rows := make([][]any, len(transactions))
	for i, t := range transactions {
		rows[i] = t.Values()
	}
	return Sheet{Columns: TransactionColumns, Rows: rows}
}

func nullTimeValue(t null.Time) any {
	if !t.Valid {
		return nil
	}
	return t.Time.UTC().Truncate(24 * time.Hour)
}

func nullFloatValue(f null.Float) any {
	if !f.Valid {
		return nil
	}
	return f.Float64
}
