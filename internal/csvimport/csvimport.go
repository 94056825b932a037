// Package csvimport parses uploaded transaction CSV text.
package csvimport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"budgetry/internal/core"
)

// Record is one parsed CSV transaction. Malformed amounts degrade to
// zero; dates are kept verbatim and normalized downstream.
type Record struct {
	Type        core.TxType
	Amount      core.Money
	Category    string
	Description string
	Date        string
}

// Parse reads CSV text with a header row naming at least
// type, amount, category, description and date (any casing). Empty
// lines are skipped.
func Parse(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("parse csv header: %w", err)
	}

	headerMap := generateHeaderMap(header)
	for _, required := range []string{"type", "amount", "category", "date"} {
		if _, ok := headerMap[required]; !ok {
			return nil, fmt.Errorf("csv header missing %q column", required)
		}
	}

	var records []Record
	for {
		line, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse csv row: %w", err)
		}

		rec := Record{
			Type:        core.TxType(field(line, headerMap, "type")),
			Category:    field(line, headerMap, "category"),
			Description: field(line, headerMap, "description"),
			Date:        field(line, headerMap, "date"),
		}
		amount, err := core.ParseAmount(field(line, headerMap, "amount"))
		if err == nil {
			rec.Amount = amount
		}
		records = append(records, rec)
	}
	return records, nil
}

func field(line []string, headerMap map[string]int, name string) string {
	i, ok := headerMap[name]
	if !ok || i >= len(line) {
		return ""
	}
	return strings.TrimSpace(line[i])
}

func generateHeaderMap(record []string) map[string]int {
	m := make(map[string]int)
	for i, r := range record {
		m[strings.ToLower(strings.TrimSpace(r))] = i
	}
	return m
}
