// internals/features/uploads/parser/tabular.go
package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// Row is one normalized spreadsheet record: canonical field key → raw cell
// text. A nil value means the cell was blank or absent. Rows are never
// persisted; the reconcilers consume them in file order.
type Row map[string]*string

// ParseError marks a buffer that could not be decoded as tabular data.
// Field-level problems are not ParseErrors; those belong to the reconcilers.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Reason, e.Err)
	}
	return "parse error: " + e.Reason
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseTabular decodes a spreadsheet buffer into ordered rows. XLSX is
// detected by its ZIP signature; anything else is treated as CSV. Only the
// first sheet of a workbook is read. The header row defines the keys (via
// NormalizeHeader); on duplicate canonical keys the later column wins.
func ParseTabular(buf []byte) ([]Row, error) {
	if len(buf) == 0 {
		return nil, &ParseError{Reason: "empty file"}
	}
	if isZip(buf) {
		return parseXLSX(buf)
	}
	return parseCSV(buf)
}

// RequiredColumns reports canonical columns missing from the first row.
func RequiredColumns(rows []Row, required []string) (missing []string) {
	if len(rows) == 0 {
		return append(missing, required...)
	}
	for _, col := range required {
		if _, ok := rows[0][col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func isZip(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 'P' && buf[1] == 'K'
}

func parseXLSX(buf []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		return nil, &ParseError{Reason: "not a readable workbook", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Reason: "workbook has no sheets"}
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Reason: "failed reading first sheet", Err: err}
	}
	return buildRows(records), nil
}

func parseCSV(buf []byte) ([]Row, error) {
	if !utf8.Valid(buf) {
		return nil, &ParseError{Reason: "not valid UTF-8 text"}
	}
	// strip a UTF-8 BOM, common in exports from Excel
	buf = bytes.TrimPrefix(buf, []byte{0xEF, 0xBB, 0xBF})

	r := csv.NewReader(bytes.NewReader(buf))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Reason: "malformed CSV", Err: err}
		}
		records = append(records, rec)
	}
	return buildRows(records), nil
}

// buildRows maps records onto the normalized header. Cells missing at the
// end of a record become nil, matching how workbook readers trim trailing
// blanks.
func buildRows(records [][]string) []Row {
	if len(records) == 0 {
		return []Row{}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = NormalizeHeader(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		if isBlankRecord(rec) {
			continue
		}
		row := make(Row, len(headers))
		for i, key := range headers {
			var val *string
			if i < len(rec) {
				if cell := strings.TrimSpace(rec[i]); cell != "" {
					v := cell
					val = &v
				}
			}
			row[key] = val
		}
		rows = append(rows, row)
	}
	return rows
}

func isBlankRecord(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
