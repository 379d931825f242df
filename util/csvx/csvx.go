// Package csvx writes spreadsheet-friendly CSV: a UTF-8 byte-order mark
// followed by comma separated records.
package csvx

import (
	"encoding/csv"
	"io"
)

// BOM is the UTF-8 byte-order mark spreadsheet tools use to detect the encoding.
const BOM = "\ufeff"

// Write emits the BOM, the header and every row. Fields containing a comma,
// a quote or a line break are quoted with inner quotes doubled.
func Write(w io.Writer, header []string, rows [][]string) error {
	if _, err := io.WriteString(w, BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
