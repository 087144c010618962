package benchcsv

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

var CombinedHeader = []string{"req", "timeapp", "timenginx", "fraction"}

// CombinedRow pairs one baseline summary row with the comparison row at the
// same position. The two values are kept as the text they were read from.
type CombinedRow struct {
	ID                           string
	BaselineText, ComparisonText string
	Baseline, Comparison         float64
	Fraction                     float64
}

func (r CombinedRow) Record() []string {
	return []string{r.ID, r.BaselineText, r.ComparisonText, FormatFloat(r.Fraction)}
}

type cursor struct {
	reader *rowReader
	line   int
}

// advance skips n-1 rows and returns the nth. ok is false once the source
// runs out before the nth row.
func (c *cursor) advance(n int) (record []string, ok bool, err error) {
	for i := 0; i < n; i++ {
		record, err = c.reader.Read()
		if errors.Is(err, io.EOF) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		c.line++
	}
	return record, true, nil
}

// CombineCSV pairs the summary rows of a (baseline) and b (comparison)
// purely by position: no request id matching is done, so both sources must
// hold the same requests in the same order. Starting at the first data row
// of each, one combined row is written and both sources move forward by
// stride rows, until either source runs out. Running out is the normal end
// and is not an error. Blank lines count as rows; one landing on a
// combined position fails with ErrShortRow.
func CombineCSV(a, b io.Reader, w io.Writer, stride, column int) ([]CombinedRow, error) {
	if stride < 1 {
		return nil, ErrInvalidStride
	}
	writer := newWriter(w)
	if err := writer.Write(CombinedHeader); err != nil {
		return nil, err
	}
	ca := &cursor{reader: newReader(a)}
	cb := &cursor{reader: newReader(b)}
	var rows []CombinedRow
	// Header plus first data row.
	rowa, oka, err := ca.advance(2)
	if err != nil {
		return nil, err
	}
	rowb, okb, err := cb.advance(2)
	if err != nil {
		return nil, err
	}
	for oka && okb {
		row, err := combineRow(rowa, rowb, column)
		if err != nil {
			writer.Flush()
			return rows, fmt.Errorf("data row %d: %w", ca.line-1, err)
		}
		if err := writer.Write(row.Record()); err != nil {
			return rows, err
		}
		rows = append(rows, row)
		rowa, oka, err = ca.advance(stride)
		if err != nil {
			return rows, err
		}
		if !oka {
			break
		}
		rowb, okb, err = cb.advance(stride)
		if err != nil {
			return rows, err
		}
	}
	writer.Flush()
	return rows, writer.Error()
}

func combineRow(a, b []string, column int) (CombinedRow, error) {
	if len(a) <= column {
		return CombinedRow{}, fmt.Errorf("baseline has %d columns, want more than %d: %w", len(a), column, ErrShortRow)
	}
	if len(b) <= column {
		return CombinedRow{}, fmt.Errorf("comparison has %d columns, want more than %d: %w", len(b), column, ErrShortRow)
	}
	base, err := ParseFloat(a[column])
	if err != nil {
		return CombinedRow{}, fmt.Errorf("baseline: %w", err)
	}
	cmp, err := ParseFloat(b[column])
	if err != nil {
		return CombinedRow{}, fmt.Errorf("comparison: %w", err)
	}
	if base == 0 {
		return CombinedRow{}, fmt.Errorf("request %q: %w", a[0], ErrZeroDenominator)
	}
	return CombinedRow{
		ID:             a[0],
		BaselineText:   a[column],
		ComparisonText: b[column],
		Baseline:       base,
		Comparison:     cmp,
		Fraction:       cmp / base,
	}, nil
}

type Combiner struct {
	output
	config Config
}

type CMPOption func(*Combiner) error

func NewCombiner(opts ...CMPOption) (*Combiner, error) {
	c := &Combiner{
		output: output{
			stdout: os.Stdout,
			stderr: os.Stderr,
		},
		config: DefaultConfig(),
	}
	for _, o := range opts {
		err := o(c)
		if err != nil {
			return nil, err
		}
	}
	if err := c.config.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func WithConfig(config Config) CMPOption {
	return func(c *Combiner) error {
		c.config = config
		return nil
	}
}

func WithConfigFile(path string) CMPOption {
	return func(c *Combiner) error {
		config, err := LoadConfig(path)
		if err != nil {
			return err
		}
		c.config = config
		return nil
	}
}

func WithCMPStdout(w io.Writer) CMPOption {
	return func(c *Combiner) error {
		if w == nil {
			return ErrValueCannotBeNil
		}
		c.stdout = w
		return nil
	}
}

func WithCMPStderr(w io.Writer) CMPOption {
	return func(c *Combiner) error {
		if w == nil {
			return ErrValueCannotBeNil
		}
		c.stderr = w
		return nil
	}
}

func WithCMPInputsFromArgs(args []string) CMPOption {
	return func(c *Combiner) error {
		fset := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
		fset.SetOutput(c.stderr)
		path := fset.String("config", "", "YAML file with sizes and path templates")
		err := fset.Parse(args)
		if err != nil {
			return err
		}
		if fset.NArg() > 0 {
			return fmt.Errorf("unexpected arguments %q", fset.Args())
		}
		if *path == "" {
			return nil
		}
		return WithConfigFile(*path)(c)
	}
}

func (c Combiner) Config() Config {
	return c.config
}

// CombineFiles combines one baseline/comparison pair into p.Output and,
// when p.Plot is set, charts the resulting fractions.
func (c *Combiner) CombineFiles(p Paths) (rows []CombinedRow, err error) {
	fa, err := os.Open(p.Baseline)
	if err != nil {
		return nil, err
	}
	defer fa.Close()
	fb, err := os.Open(p.Comparison)
	if err != nil {
		return nil, err
	}
	defer fb.Close()
	out, err := os.Create(p.Output)
	if err != nil {
		return nil, err
	}
	defer func() {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}()
	rows, err = CombineCSV(fa, fb, out, c.config.Stride, c.config.Column)
	if err != nil {
		return rows, err
	}
	if p.Plot != "" && len(rows) > 0 {
		err = PlotFractions(rows, p.Output, p.Plot)
		if err != nil {
			return rows, err
		}
	}
	return rows, nil
}

// Run combines every configured size in order. The first failing size
// stops the batch.
func (c *Combiner) Run() error {
	for _, size := range c.config.Sizes {
		p := c.config.Paths(size)
		rows, err := c.CombineFiles(p)
		if err != nil {
			return fmt.Errorf("size %d: %w", size, err)
		}
		c.LogFStdOut("size %d: %d rows combined into %s\n", size, len(rows), p.Output)
	}
	return nil
}
