package fileio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	excelize "github.com/xuri/excelize/v2"
)

// WriteAny serializes a header row plus data rows in the format matching
// ext. Legacy .xls is written back as .xlsx; OutExt reports that remap.
func WriteAny(w io.Writer, ext string, headers []string, rows [][]string) error {
	switch OutExt(ext) {
	case ".xlsx":
		return writeXLSX(w, headers, rows)
	case ".csv", ".tsv", ".txt":
		return writeCSV(w, ext, headers, rows)
	default:
		return fmt.Errorf("unsupported output format: %s", ext)
	}
}

// OutExt maps an input extension onto the extension the output will carry.
func OutExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext == ".xls" {
		return ".xlsx"
	}
	return ext
}

// ContentType returns the MIME type for a produced file.
func ContentType(ext string) string {
	switch OutExt(ext) {
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".tsv":
		return "text/tab-separated-values; charset=utf-8"
	default:
		return "text/csv; charset=utf-8"
	}
}

func writeCSV(w io.Writer, ext string, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if strings.ToLower(ext) == ".tsv" {
		cw.Comma = '\t'
	}
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, r := range rows {
		if err := cw.Write(r); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, headers []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	hdr := make([]any, len(headers))
	for i, h := range headers {
		hdr[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &hdr); err != nil {
		return err
	}
	for i, r := range rows {
		cells := make([]any, len(r))
		for j, v := range r {
			cells[j] = v
		}
		addr, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
			return err
		}
	}
	return f.Write(w)
}
