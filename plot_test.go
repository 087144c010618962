package benchcsv_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/thiagonache/benchcsv"
)

func TestPlotFractionsWritesPNG(t *testing.T) {
	t.Parallel()
	rows := []benchcsv.CombinedRow{
		{ID: "r1", Fraction: 0.8},
		{ID: "r11", Fraction: 1.1},
		{ID: "r21", Fraction: 0.95},
	}
	path := filepath.Join(t.TempDir(), "100.png")
	err := benchcsv.PlotFractions(rows, "size 100", path)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("want PNG image")
	}
}

func TestPlotFractionsWithUnknownExtensionReturnsError(t *testing.T) {
	t.Parallel()
	rows := []benchcsv.CombinedRow{{ID: "r1", Fraction: 1}}
	err := benchcsv.PlotFractions(rows, "size 1", filepath.Join(t.TempDir(), "chart.bogus"))
	if err == nil {
		t.Error("want error for an unsupported image format")
	}
}
