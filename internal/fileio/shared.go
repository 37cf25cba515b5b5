package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadAnyTable picks a parser by extension and returns the header row (in
// file order) plus data rows as map[header]value. headerRow is 1-based.
func ReadAnyTable(r io.Reader, filename string, headerRow int) ([]string, []map[string]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	var rows [][]string
	var err error
	switch ext {
	case ".xlsx":
		rows, err = readXLSX(r)
	case ".xls":
		rows, err = readXLS(r, headerRow)
	case ".csv", ".tsv", ".txt":
		rows, err = readCSV(r, ext)
	default:
		return nil, nil, fmt.Errorf("unsupported file: %s", filename)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	h := pickHeader(rows, headerRow)
	return h, rowsToMaps(rows, h, headerRow), nil
}

// ReadAnyMaps is ReadAnyTable without the header order.
func ReadAnyMaps(r io.Reader, filename string, headerRow int) ([]map[string]string, error) {
	_, m, err := ReadAnyTable(r, filename, headerRow)
	return m, err
}

// pickHeader takes the header row and substitutes "Column N" for blanks.
func pickHeader(rows [][]string, headerRow int) []string {
	idx := headerRow - 1
	if idx < 0 || idx >= len(rows) {
		idx = 0
	}
	h := rows[idx]
	out := make([]string, len(h))
	for i, v := range h {
		v = strings.TrimSpace(v)
		if v == "" {
			v = fmt.Sprintf("Column %d", i+1)
		}
		out[i] = v
	}
	return out
}

// rowsToMaps converts row slices to maps keyed by header, skipping rows
// that are entirely empty.
func rowsToMaps(rows [][]string, headers []string, headerRow int) []map[string]string {
	start := headerRow // first row after the header
	var out []map[string]string
	for r := start; r < len(rows); r++ {
		rec := rows[r]
		m := map[string]string{}
		for c := 0; c < len(headers); c++ {
			var v string
			if c < len(rec) {
				v = rec[c]
			}
			m[headers[c]] = v
		}
		empty := true
		for _, v := range m {
			if strings.TrimSpace(v) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, m)
		}
	}
	return out
}
