package utils

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// ParseQty parses a user supplied quantity field. Absent, malformed or
// negative input counts as exactly 0; the discrepancy math depends on this
// permissive behavior, it is not a validation error.
func ParseQty(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParseQtyCell parses an optional quantity column. A blank cell returns nil
// so the caller can keep a stored value; anything else goes through ParseQty,
// so an explicit "0" is a real zero, not an absent column.
func ParseQtyCell(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v := ParseQty(s)
	return &v
}

// NormalizeCode uppercases a staff or SKU code for lookup and storage.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ReadCSVRecords reads a headered CSV into one map per data row, keyed by the
// header names. Quoted values (e.g. "Noida WH,Mumbai WH") are handled by the
// csv reader. Rows shorter than the header get empty strings for the missing
// columns.
func ReadCSVRecords(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		row := make(map[string]string, len(header))
		empty := true
		for i, key := range header {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			if value != "" {
				empty = false
			}
			row[key] = value
		}
		if empty {
			continue
		}
		rows = append(rows, row)
	}

	return rows, nil
}
