package benchcsv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrNoInput          = errors.New("no input file")
	ErrEmptySampleSet   = errors.New("row has no samples")
	ErrZeroDenominator  = errors.New("baseline value is zero")
	ErrShortRow         = errors.New("row is too short")
	ErrValueCannotBeNil = errors.New("value cannot be nil")
	ErrInvalidStride    = errors.New("stride must be at least 1")
	ErrNoSizes          = errors.New("no sizes configured")
)

// FormatFloat renders v with exactly six digits after the decimal point.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// ParseFloat parses a decimal sample field. Surrounding spaces are
// ignored. Hexadecimal floats are rejected even though strconv accepts
// them.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	digits := strings.TrimLeft(s, "+-")
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		return 0, &strconv.NumError{Func: "ParseFloat", Num: s, Err: strconv.ErrSyntax}
	}
	return strconv.ParseFloat(s, 64)
}

// rowReader reads CSV records one physical line at a time. Unlike
// csv.Reader it does not skip blank lines: each one is returned as an
// empty record, so it still counts as a row.
type rowReader struct {
	scanner *bufio.Scanner
}

func newReader(r io.Reader) *rowReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &rowReader{scanner: scanner}
}

// Read returns the next record, or io.EOF once the input is exhausted. A
// quoted field spanning several lines is joined back into one record.
func (r *rowReader) Read() ([]string, error) {
	var text strings.Builder
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if text.Len() == 0 && line == "" {
			return []string{}, nil
		}
		text.WriteString(line)
		text.WriteByte('\n')
		if strings.Count(text.String(), `"`)%2 == 0 {
			return parseRecord(text.String())
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if text.Len() > 0 {
		return parseRecord(text.String())
	}
	return nil, io.EOF
}

func parseRecord(text string) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	record, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil
	}
	return record, err
}

// newWriter terminates lines with CRLF.
func newWriter(w io.Writer) *csv.Writer {
	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	return writer
}

// output holds the writers every tool logs to.
type output struct {
	stdout, stderr io.Writer
}

func (o output) LogFStdOut(msg string, opts ...interface{}) {
	fmt.Fprintf(o.stdout, msg, opts...)
}
