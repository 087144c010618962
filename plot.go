package benchcsv

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotFractions charts the fraction of every combined row, in row order,
// and saves it to path. The image format follows the file extension.
func PlotFractions(rows []CombinedRow, title, path string) error {
	points := make(plotter.XYs, len(rows))
	for i, r := range rows {
		points[i].X = float64(i)
		points[i].Y = r.Fraction
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "combined row"
	p.Y.Label.Text = "fraction"
	p.Add(plotter.NewGrid())

	// Equal latency on both sides.
	parity := plotter.NewFunction(func(float64) float64 { return 1 })
	parity.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	line, err := plotter.NewLine(points)
	if err != nil {
		return err
	}
	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return err
	}
	p.Add(parity, line, scatter)
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}
