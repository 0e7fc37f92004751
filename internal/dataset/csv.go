package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadCSV reads a comma-separated file with a header row. Columns whose
// every value parses as a float become dimensions; the rest become nominal
// attributes. Point names come from a "name" column when present, otherwise
// from the first nominal column, otherwise they are generated.
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("dataset %s needs a header row and at least one data row", path)
	}

	header := records[0]
	rows := records[1:]
	return tableFromRecords(path, header, rows)
}

// tableFromRecords classifies columns and assembles a Table. Shared by the
// CSV and SQLite loaders once rows are in string form.
func tableFromRecords(source string, header []string, rows [][]string) (*Table, error) {
	n := len(rows)
	numeric := make([]bool, len(header))
	for j := range header {
		numeric[j] = true
		for i := 0; i < n; i++ {
			if j >= len(rows[i]) {
				return nil, fmt.Errorf("row %d of %s has %d columns, header has %d", i+1, source, len(rows[i]), len(header))
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[i][j]), 64); err != nil {
				numeric[j] = false
				break
			}
		}
	}

	var dimensions, nominals []string
	values := make(map[string][]float64)
	labels := make(map[string][]string)
	for j, col := range header {
		col = strings.TrimSpace(col)
		if numeric[j] {
			dimensions = append(dimensions, col)
			vals := make([]float64, n)
			for i := 0; i < n; i++ {
				vals[i], _ = strconv.ParseFloat(strings.TrimSpace(rows[i][j]), 64)
			}
			values[col] = vals
		} else {
			nominals = append(nominals, col)
			strs := make([]string, n)
			for i := 0; i < n; i++ {
				strs[i] = strings.TrimSpace(rows[i][j])
			}
			labels[col] = strs
		}
	}

	names := pickNames(n, nominals, labels)
	return NewTable(source, names, dimensions, values, nominals, labels)
}

// pickNames chooses the identifier column: "name" if present, else the first
// nominal column, else generated identifiers.
func pickNames(n int, nominals []string, labels map[string][]string) []string {
	for _, nom := range nominals {
		if strings.EqualFold(nom, NameColumn) {
			return labels[nom]
		}
	}
	if len(nominals) > 0 {
		return labels[nominals[0]]
	}
	return generatedNames(n)
}
