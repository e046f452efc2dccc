package extraction

import (
	"fmt"
	"strings"

	"github.com/docneat/docneat-backend/models"
)

// MergeTables concatenates tables. The merged header is the union of all headers, in the order
// they are first seen, and rows are aligned on it by column name. Repeated names inside one table
// are suffixed with ".1", ".2"...
func MergeTables(tables []models.Table) models.Table {
	var merged models.Table
	position := make(map[string]int)

	for _, table := range tables {
		header := dedupeHeader(table.Header)
		for _, name := range header {
			if _, ok := position[name]; !ok {
				position[name] = len(merged.Header)
				merged.Header = append(merged.Header, name)
			}
		}

		for _, row := range table.Rows {
			out := make([]string, len(merged.Header))
			for i, name := range header {
				if i < len(row) {
					out[position[name]] = row[i]
				}
			}
			merged.Rows = append(merged.Rows, out)
		}
	}

	// rows appended before the header grew are padded to the final width
	for i, row := range merged.Rows {
		if len(row) < len(merged.Header) {
			merged.Rows[i] = append(row, make([]string, len(merged.Header)-len(row))...)
		}
	}
	return merged
}

func dedupeHeader(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			out[i] = fmt.Sprintf("%s.%d", name, n+1)
			continue
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}
