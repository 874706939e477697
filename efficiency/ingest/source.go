package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format identifies how a dataset source is encoded.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

func (f Format) String() string {
	if f == FormatXLSX {
		return "xlsx"
	}
	return "csv"
}

// FormatFromPath picks the source format from the file extension. Anything
// other than an Excel workbook is read as CSV text.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	}
	return FormatCSV
}

// errRowDecode marks a row that could not be decoded; the loader skips it.
var errRowDecode = errors.New("undecodable row")

// rowSource yields the header and then data rows of a dataset, after the
// preamble has been discarded. Next returns io.EOF at the end of input, an
// error wrapping errRowDecode for a skippable row, and any other error for
// an I/O failure.
type rowSource interface {
	Header() ([]string, error)
	Next() ([]string, error)
	Close() error
}

// csvSource reads comma-separated text.
type csvSource struct {
	reader *csv.Reader
}

// newCSVSource discards preamble raw text lines and wraps the rest in a CSV reader.
// A source shorter than the preamble is left empty, so Header reports ErrSchema.
func newCSVSource(r io.Reader, preamble int) (*csvSource, error) {
	br := bufio.NewReader(r)
	for i := 0; i < preamble; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("skipping preamble line %d: %w", i+1, err)
		}
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = 0 // every data row must match the header width
	reader.LazyQuotes = true   // a stray quote inside an unquoted field is kept literally
	return &csvSource{reader: reader}, nil
}

func (s *csvSource) Header() ([]string, error) {
	header, err := s.reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no header row after preamble", ErrSchema)
	}
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	return header, nil
}

func (s *csvSource) Next() ([]string, error) {
	fields, err := s.reader.Read()
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return nil, fmt.Errorf("%w: %v", errRowDecode, err)
	}
	return fields, err
}

func (s *csvSource) Close() error { return nil }

// rawValues makes the row iterator return stored cell values rather than
// text rendered through the cell's number format.
var rawValues = excelize.Options{RawCellValue: true}

// xlsxSource reads one worksheet of an Excel workbook. Preamble lines are
// worksheet rows; multi-line header cells count as a single row.
type xlsxSource struct {
	file *excelize.File
	rows *excelize.Rows
}

func newXLSXSource(r io.Reader, sheet string, preamble int) (*xlsxSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.Rows(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("opening sheet %q: %w", sheet, err)
	}

	s := &xlsxSource{file: f, rows: rows}
	for i := 0; i < preamble; i++ {
		if !rows.Next() {
			break
		}
	}
	if err := rows.Error(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("skipping preamble rows: %w", err)
	}
	return s, nil
}

func (s *xlsxSource) Header() ([]string, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, fmt.Errorf("reading header: %w", err)
		}
		return nil, fmt.Errorf("%w: no header row after preamble", ErrSchema)
	}
	header, err := s.rows.Columns(rawValues)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return header, nil
}

func (s *xlsxSource) Next() ([]string, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	fields, err := s.rows.Columns(rawValues)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errRowDecode, err)
	}
	return fields, nil
}

func (s *xlsxSource) Close() error {
	rowsErr := s.rows.Close()
	if err := s.file.Close(); err != nil {
		return err
	}
	return rowsErr
}
