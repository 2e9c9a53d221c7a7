package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrNoHeader is returned when CSV input has no header row.
	ErrNoHeader = errors.New("csv input has no header row")

	// ErrEncoding is returned for input that is neither UTF-8 nor Windows-1252.
	ErrEncoding = errors.New("csv input is not valid UTF-8 or Windows-1252")
)

const utf8BOM = "\ufeff"

// decodeInput returns data as UTF-8. Input that is not valid UTF-8 is
// treated as Windows-1252, the encoding Excel uses when re-saving exports.
func decodeInput(data []byte) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	// The decoder maps the five undefined Windows-1252 bytes to U+FFFD.
	if bytes.ContainsRune(decoded, utf8.RuneError) {
		return nil, ErrEncoding
	}
	return decoded, nil
}

// ReadCSV parses CSV with a mandatory header row. Leading spaces after a
// delimiter are skipped, empty fields become null, and short rows are padded
// with nulls. Fields beyond the header width are discarded. Input that is
// not UTF-8 is decoded as Windows-1252; bytes undefined there give
// ErrEncoding.
func ReadCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	data, err = decodeInput(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // LinkedIn exports are not always rectangular
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	t := New(header...)
	width := len(header)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", t.Len()+1, err)
		}
		row := make(Row, len(t.columns))
		for i := 0; i < width && i < len(record); i++ {
			dst, ok := t.index[header[i]]
			if !ok || row[dst].Valid {
				continue
			}
			if record[i] != "" {
				row[dst] = Str(record[i])
			}
		}
		t.rows = append(t.rows, row)
	}

	return t, nil
}

// WriteCSV writes the header and all rows. Nulls are written as empty fields.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.columns); err != nil {
		return err
	}
	record := make([]string, len(t.columns))
	for _, r := range t.rows {
		for i, c := range r {
			record[i] = c.String()
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
