package benchcsv

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/floats"
)

const DefaultOutputDir = "converted"

var SummaryHeader = []string{"req", "min_time", "max_time", "time_range", "avg_time"}

// Summary holds the reductions of one request's timing samples.
type Summary struct {
	ID                    string
	Min, Max, Range, Mean float64
}

// Record returns s in SummaryHeader column order.
func (s Summary) Record() []string {
	return []string{
		s.ID,
		FormatFloat(s.Min),
		FormatFloat(s.Max),
		FormatFloat(s.Range),
		FormatFloat(s.Mean),
	}
}

// Summarize reduces samples to their minimum, maximum, range and mean.
func Summarize(id string, samples []float64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, fmt.Errorf("request %q: %w", id, ErrEmptySampleSet)
	}
	min := floats.Min(samples)
	max := floats.Max(samples)
	return Summary{
		ID:    id,
		Min:   min,
		Max:   max,
		Range: max - min,
		Mean:  mean(samples),
	}, nil
}

// mean adds samples strictly left to right. floats.Sum reorders the
// additions, which can change the sixth decimal of the result.
func mean(samples []float64) float64 {
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

// ParseSampleRow splits a raw record into its request id and samples. The
// id is kept as text.
func ParseSampleRow(record []string) (string, []float64, error) {
	if len(record) == 0 {
		return "", nil, ErrEmptySampleSet
	}
	samples := make([]float64, 0, len(record)-1)
	for i, field := range record[1:] {
		v, err := ParseFloat(field)
		if err != nil {
			return "", nil, fmt.Errorf("request %q: sample %d: %w", record[0], i+1, err)
		}
		samples = append(samples, v)
	}
	return record[0], samples, nil
}

// SummarizeCSV reads raw sample rows from r and writes one summary row per
// data row to w. The first input row is a header and is skipped as is. It
// returns the number of summary rows written and stops at the first bad
// row.
func SummarizeCSV(r io.Reader, w io.Writer) (int, error) {
	reader := newReader(r)
	writer := newWriter(w)
	if err := writer.Write(SummaryHeader); err != nil {
		return 0, err
	}
	rows := 0
	for line := 0; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, err
		}
		if line == 0 {
			continue
		}
		id, samples, err := ParseSampleRow(record)
		if err != nil {
			return rows, fmt.Errorf("row %d: %w", line, err)
		}
		summary, err := Summarize(id, samples)
		if err != nil {
			return rows, fmt.Errorf("row %d: %w", line, err)
		}
		if err := writer.Write(summary.Record()); err != nil {
			return rows, err
		}
		rows++
	}
	writer.Flush()
	return rows, writer.Error()
}

type Summarizer struct {
	output
	input     string
	outputDir string
}

type Option func(*Summarizer) error

func NewSummarizer(opts ...Option) (*Summarizer, error) {
	s := &Summarizer{
		output: output{
			stdout: os.Stdout,
			stderr: os.Stderr,
		},
		outputDir: DefaultOutputDir,
	}
	for _, o := range opts {
		err := o(s)
		if err != nil {
			return nil, err
		}
	}
	if s.input == "" {
		return nil, ErrNoInput
	}
	return s, nil
}

func WithInput(path string) Option {
	return func(s *Summarizer) error {
		s.input = path
		return nil
	}
}

func WithOutputDir(dir string) Option {
	return func(s *Summarizer) error {
		s.outputDir = dir
		return nil
	}
}

func WithStdout(w io.Writer) Option {
	return func(s *Summarizer) error {
		if w == nil {
			return ErrValueCannotBeNil
		}
		s.stdout = w
		return nil
	}
}

func WithStderr(w io.Writer) Option {
	return func(s *Summarizer) error {
		if w == nil {
			return ErrValueCannotBeNil
		}
		s.stderr = w
		return nil
	}
}

func WithInputsFromArgs(args []string) Option {
	return func(s *Summarizer) error {
		fset := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
		fset.SetOutput(s.stderr)
		dir := fset.String("o", DefaultOutputDir, "directory the summary is written under")
		err := fset.Parse(args)
		if err != nil {
			return err
		}
		args = fset.Args()
		if len(args) < 1 {
			return ErrNoInput
		}
		s.input = args[0]
		s.outputDir = *dir
		return nil
	}
}

func (s Summarizer) Input() string {
	return s.input
}

// OutputPath is the input path placed under the output directory. The
// directory itself is expected to exist.
func (s Summarizer) OutputPath() string {
	return filepath.Join(s.outputDir, s.input)
}

func (s *Summarizer) Run() (err error) {
	in, err := os.Open(s.input)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(s.OutputPath())
	if err != nil {
		return err
	}
	defer func() {
		cerr := out.Close()
		if err == nil {
			err = cerr
		}
	}()
	rows, err := SummarizeCSV(in, out)
	if err != nil {
		return fmt.Errorf("summarizing %s: %w", s.input, err)
	}
	s.LogFStdOut("%s: %d requests summarized into %s\n", s.input, rows, s.OutputPath())
	return nil
}
