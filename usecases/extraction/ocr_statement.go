package extraction

import (
	"regexp"
	"strings"

	"github.com/guregu/null/v5"

	"github.com/docneat/docneat-backend/models"
)

var (
	// statement boilerplate, matched at the start of an OCR line
	boilerplateLine = regexp.MustCompile(`^(The Secretary|Account Name|Your BUSINESS CURRENT ACCOUNT details|` +
		`Account Summary|Opening Balance|Payments In|Payments Out|Closing Balance|` +
		`International Bank Account Number|Branch Identifier Code|Sortcode|Sheet Number|` +
		`46 The Broadway Ealing London W5 5JR|HSBC > UK|Contact tel|Text phone|www\.hsbc\.co\.uk)`)

	transactionDate = regexp.MustCompile(`^\d{1,2} [A-Za-z]{3} \d{2}(\d{2})?\b`)

	amountPattern = regexp.MustCompile(`\d+(?:,\d{3})*\.\d{2}`)
)

type pendingTransaction struct {
	date        string
	description string
	paidOut     null.Float
	paidIn      null.Float
	balance     null.Float
}

func (p pendingTransaction) transaction() models.Transaction {
	paidOut := null.FloatFrom(p.paidOut.ValueOrZero())
	paidIn := null.FloatFrom(p.paidIn.ValueOrZero())
	return models.Transaction{
		Date:        parseDate(p.date),
		Description: strings.TrimSpace(p.description),
		PaidOut:     paidOut,
		PaidIn:      paidIn,
		Balance:     p.balance,
		Amount:      roundCents(paidIn.Float64 - paidOut.Float64),
	}
}

// ParseStatementText turns the OCR text of a statement into transactions. A line starting with a
// date opens a transaction, and the following lines add amounts and description to it until the
// next date. Lines before the first date are ignored.
func ParseStatementText(text string) []models.Transaction {
	var transactions []models.Transaction
	var current *pendingTransaction

	for _, line := range strings.Split(normalizeText(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || boilerplateLine.MatchString(line) {
			continue
		}

		if date := transactionDate.FindString(line); date != "" {
			if current != nil {
				transactions = append(transactions, current.transaction())
			}
			current = &pendingTransaction{
				date:        date,
				description: strings.TrimSpace(strings.Replace(line, date, "", 1)),
			}
			continue
		}

		if current == nil {
			continue
		}

		amounts := amountPattern.FindAllString(line, -1)
		if len(amounts) > 0 {
			values := make([]null.Float, len(amounts))
			for i, a := range amounts {
				values[i] = parseAmount(a)
			}
			switch len(values) {
			case 1:
				if strings.Contains(line, "Visa Rate") || strings.Contains(line, "Transaction Fee") {
					current.paidOut = values[0]
				} else {
					current.balance = values[0]
				}
			case 2:
				current.paidOut = values[0]
				current.paidIn = values[1]
			default:
				current.paidOut = values[0]
				current.paidIn = values[1]
				current.balance = values[2]
			}
			line = strings.TrimSpace(amountPattern.ReplaceAllString(line, ""))
		}

		if line != "" {
			if current.description != "" {
				current.description += " " + line
			} else {
				current.description = line
			}
		}
	}

	if current != nil {
		transactions = append(transactions, current.transaction())
	}
	return transactions
}
