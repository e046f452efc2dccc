package extraction

import (
	"regexp"
	"slices"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/guregu/null/v5"

	"github.com/docneat/docneat-backend/models"
)

var (
	columnRenames = map[string]string{
		"Payment type and details": models.ColumnDescription,
		"Details":                  models.ColumnDescription,
		"Paid out":                 models.ColumnPaidOut,
		"Paid in":                  models.ColumnPaidIn,
		"Money out":                models.ColumnPaidOut,
		"Money in":                 models.ColumnPaidIn,
	}

	// names a header is compared to when it has no exact rename
	canonicalHeaders = []string{
		models.ColumnDate,
		models.ColumnDescription,
		models.ColumnPaidOut,
		models.ColumnPaidIn,
		models.ColumnBalance,
	}

	// headers suffixed by MergeTables
	dedupedHeader = regexp.MustCompile(`\.\d+$`)

	noiseDescription = regexp.MustCompile(`(?i)BALANCE BROUGHT FORWARD|BALANCE CARRIED FORWARD|Account Summary|` +
		`Opening Balance|Closing Balance|Sortcode|Sheet Number|HSBC > UK|Contact tel|Text phone|` +
		`www\.hsbc\.co\.uk|Your Statement`)
)

// CleanTable normalizes an extracted table. When the table has both paid out and paid in columns
// it is converted to transactions and filtered like CleanTransactions, otherwise it is returned as
// a table of trimmed strings. Rows whose cells are all empty are dropped in both cases.
func CleanTable(table models.Table) models.Sheet {
	header := make([]string, len(table.Header))
	for i, name := range table.Header {
		header[i] = canonicalHeader(name)
	}
	// "Details" and "Description" can both land on Description
	header = dedupeHeader(header)

	rows := make([][]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		trimmed := make([]string, len(header))
		empty := true
		for i := range header {
			if i < len(row) {
				trimmed[i] = strings.TrimSpace(row[i])
			}
			if trimmed[i] != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, trimmed)
		}
	}

	paidOutIdx := slices.Index(header, models.ColumnPaidOut)
	paidInIdx := slices.Index(header, models.ColumnPaidIn)
	if paidOutIdx < 0 || paidInIdx < 0 {
		sheet := models.Sheet{Columns: header, Rows: make([][]any, len(rows))}
		for i, row := range rows {
			sheet.Rows[i] = make([]any, len(row))
			for j, cell := range row {
				sheet.Rows[i][j] = cell
			}
		}
		return sheet
	}

	dateIdx := slices.Index(header, models.ColumnDate)
	descriptionIdx := slices.Index(header, models.ColumnDescription)
	balanceIdx := slices.Index(header, models.ColumnBalance)
	cell := func(row []string, idx int) string {
		if idx < 0 {
			return ""
		}
		return row[idx]
	}

	transactions := make([]models.Transaction, 0, len(rows))
	for _, row := range rows {
		paidOut := null.FloatFrom(parseAmount(cell(row, paidOutIdx)).ValueOrZero())
		paidIn := null.FloatFrom(parseAmount(cell(row, paidInIdx)).ValueOrZero())
		transactions = append(transactions, models.Transaction{
			Date:        parseDate(cell(row, dateIdx)),
			Description: cell(row, descriptionIdx),
			PaidOut:     paidOut,
			PaidIn:      paidIn,
			Balance:     parseAmount(cell(row, balanceIdx)),
			Amount:      roundCents(paidIn.Float64 - paidOut.Float64),
		})
	}
	return CleanTransactions(transactions)
}

const headerMatchThreshold = 0.9

// canonicalHeader renames the known statement headings. Headings misread by the OCR or Textract
// ("Paid 0ut", "Descriptlon") are matched with a Jaro-Winkler similarity.
func canonicalHeader(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if renamed, ok := columnRenames[name]; ok {
		return renamed
	}
	if slices.Contains(canonicalHeaders, name) || dedupedHeader.MatchString(name) {
		return name
	}

	metric := metrics.NewJaroWinkler()
	lower := strings.ToLower(name)
	best, bestScore := name, 0.0
	for candidate, renamed := range columnRenames {
		if score := strutil.Similarity(lower, strings.ToLower(candidate), metric); score > bestScore {
			best, bestScore = renamed, score
		}
	}
	for _, candidate := range canonicalHeaders {
		if score := strutil.Similarity(lower, strings.ToLower(candidate), metric); score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore >= headerMatchThreshold {
		return best
	}
	return name
}

// CleanTransactions drops statement boilerplate rows and rows that do not move any money.
func CleanTransactions(transactions []models.Transaction) models.Sheet {
	kept := make([]models.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if noiseDescription.MatchString(t.Description) {
			continue
		}
		if t.Amount == 0 {
			continue
		}
		kept = append(kept, t)
	}
	return models.SheetFromTransactions(kept)
}
