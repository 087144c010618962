package benchcsv

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

const (
	DefaultStride = 10
	// DefaultColumn is the fifth column of a summary row.
	DefaultColumn = 4

	sizePlaceholder = "{size}"
)

var DefaultSizes = []int{1, 5, 10, 50, 100, 500, 1000, 5000}

// Config describes a combine batch. Path templates have every "{size}"
// replaced by the size being combined.
type Config struct {
	Sizes      []int  `yaml:"sizes"`
	Baseline   string `yaml:"baseline"`
	Comparison string `yaml:"comparison"`
	Output     string `yaml:"output"`
	Plot       string `yaml:"plot"`
	Stride     int    `yaml:"stride"`
	Column     int    `yaml:"column"`
}

// Paths are the files involved in combining one size.
type Paths struct {
	Baseline, Comparison, Output, Plot string
}

func DefaultConfig() Config {
	return Config{
		Sizes:      append([]int(nil), DefaultSizes...),
		Baseline:   "converted/app/" + sizePlaceholder,
		Comparison: "converted/nginx/" + sizePlaceholder,
		Output:     "combined/" + sizePlaceholder,
		Stride:     DefaultStride,
		Column:     DefaultColumn,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

func (c Config) Validate() error {
	if len(c.Sizes) == 0 {
		return ErrNoSizes
	}
	if c.Stride < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidStride, c.Stride)
	}
	if c.Column < 1 {
		return fmt.Errorf("column %d cannot hold a value, the first column is the request id", c.Column)
	}
	for _, tmpl := range []string{c.Baseline, c.Comparison, c.Output} {
		if tmpl == "" {
			return fmt.Errorf("path templates cannot be empty")
		}
	}
	return nil
}

func (c Config) Paths(size int) Paths {
	s := strconv.Itoa(size)
	expand := func(tmpl string) string {
		return strings.ReplaceAll(tmpl, sizePlaceholder, s)
	}
	return Paths{
		Baseline:   expand(c.Baseline),
		Comparison: expand(c.Comparison),
		Output:     expand(c.Output),
		Plot:       expand(c.Plot),
	}
}
