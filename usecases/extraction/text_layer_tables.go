package extraction

import (
	"regexp"
	"strings"

	"github.com/hashicorp/go-set/v2"

	"github.com/docneat/docneat-backend/models"
)

var (
	columnSeparator = regexp.MustCompile(`\s{2,}`)

	// lower cased headings that identify the header line of a statement table
	knownHeadings = set.From([]string{
		"date",
		"payment type and details",
		"description",
		"details",
		"paid out",
		"paid in",
		"money out",
		"money in",
		"balance",
	})
)

type layoutField struct {
	start int
	end   int
	text  string
}

// splitLayoutLine cuts a text-layer line into the fields separated by at least two spaces, keeping
// their character offsets so that they can be aligned with the header.
func splitLayoutLine(line string) []layoutField {
	line = strings.ReplaceAll(line, "\t", "    ")
	var fields []layoutField
	cursor := 0
	for _, sep := range columnSeparator.FindAllStringIndex(line, -1) {
		fields = appendField(fields, line, cursor, sep[0])
		cursor = sep[1]
	}
	return appendField(fields, line, cursor, len(line))
}

func appendField(fields []layoutField, line string, start, end int) []layoutField {
	raw := line[start:end]
	text := strings.TrimSpace(raw)
	if text == "" {
		return fields
	}
	start += strings.Index(raw, text)
	return append(fields, layoutField{start: start, end: start + len(text), text: text})
}

func isHeaderLine(fields []layoutField) bool {
	hasDate := false
	others := 0
	for _, field := range fields {
		heading := strings.ToLower(field.text)
		if !knownHeadings.Contains(heading) {
			continue
		}
		if heading == "date" {
			hasDate = true
		} else {
			others++
		}
	}
	return hasDate && others >= 2
}

// TablesFromTextLayer detects statement tables in the text layer of a PDF, one page text per item.
// Every header line starts a new table; the following non-empty lines are its rows, each field
// being assigned to the header column it overlaps the most.
func TablesFromTextLayer(pages []string) []models.Table {
	var tables []models.Table
	for _, page := range pages {
		var current *models.Table
		var columns []layoutField

		for _, line := range strings.Split(normalizeText(page), "\n") {
			fields := splitLayoutLine(line)
			if len(fields) == 0 {
				continue
			}
			if isHeaderLine(fields) {
				if current != nil && !current.IsEmpty() {
					tables = append(tables, *current)
				}
				columns = fields
				header := make([]string, len(fields))
				for i, field := range fields {
					header[i] = field.text
				}
				current = &models.Table{Header: header}
				continue
			}
			// single fields are page footers and stray text
			if current == nil || len(fields) < 2 {
				continue
			}
			current.Rows = append(current.Rows, alignFields(columns, fields))
		}

		if current != nil && !current.IsEmpty() {
			tables = append(tables, *current)
		}
	}
	return tables
}

func alignFields(columns, fields []layoutField) []string {
	row := make([]string, len(columns))
	// text extracted without layout has no meaningful offsets: fall back to the field order
	if len(fields) == len(columns) {
		for i, field := range fields {
			row[i] = field.text
		}
		return row
	}

	for _, field := range fields {
		col := nearestColumn(columns, field)
		if row[col] != "" {
			row[col] += " " + field.text
		} else {
			row[col] = field.text
		}
	}
	return row
}

func nearestColumn(columns []layoutField, field layoutField) int {
	best, bestScore := 0, -1<<31
	for i, column := range columns {
		// overlap between the field and the column span, negative when they are apart
		start := column.start
		end := column.end
		if i+1 < len(columns) {
			end = max(end, columns[i+1].start-1)
		}
		score := min(end, field.end) - max(start, field.start)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}
